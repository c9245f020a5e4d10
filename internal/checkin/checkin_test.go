package checkin

import (
	"net/url"
	"strings"
	"testing"

	"campushub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := NewCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.Contains(t, codeCharset, string(r))
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 90, "codes should be effectively unique")
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, NormalizeCode("abc123xyz000"), NormalizeCode("ABC123XYZ000"))
	assert.Equal(t, "ABC123XYZ000", NormalizeCode("  abc123xyz000 "))
}

func TestQRPayloadRoundTrip(t *testing.T) {
	reg := &domain.Registration{
		ID:          7,
		EventID:     3,
		UserID:      12,
		CheckInCode: "ABCDEFGHJKLM",
		QRCode:      "3e9d6a60-1db7-4c72-9f5e-2e1a9e3f7c41",
	}

	p := NewQRPayload(reg)
	assert.Equal(t, PayloadType, p.Type)

	encoded, err := p.Encode()
	require.NoError(t, err)

	decoded, err := DecodeQRPayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecodeQRPayload(t *testing.T) {
	t.Run("rejects malformed json", func(t *testing.T) {
		_, err := DecodeQRPayload("not json")
		assert.Error(t, err)
	})

	t.Run("rejects foreign payload types", func(t *testing.T) {
		_, err := DecodeQRPayload(`{"type":"ticket_refund","event_id":1}`)
		assert.Error(t, err)
	})
}

func TestImageURL(t *testing.T) {
	reg := &domain.Registration{ID: 1, EventID: 2, UserID: 3, CheckInCode: "ABCDEFGHJKLM", QRCode: "qr"}

	raw, err := ImageURL(NewQRPayload(reg))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, qrImageEndpoint))

	u, err := url.Parse(raw)
	require.NoError(t, err)

	decoded, err := DecodeQRPayload(u.Query().Get("data"))
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.EventID)
}
