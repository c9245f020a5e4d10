package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campushub/internal/checkin"
	"campushub/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestContext(t *testing.T, body any, eventID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(http.MethodPost, "/", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(eventID)
	return c, rec
}

func TestCheckInByScanRejectsForeignEvent(t *testing.T) {
	payload, err := checkin.QRPayload{
		Type:           checkin.PayloadType,
		EventID:        7,
		UserID:         2,
		RegistrationID: 11,
		QRCode:         "qr-credential",
		CheckInCode:    "ABCDEFGHJKLM",
	}.Encode()
	require.NoError(t, err)

	c, rec := newTestContext(t, ScanCheckInRequest{Payload: payload}, "8")

	require.NoError(t, CheckInByScan(nil)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrWrongEvent.Error())
}

func TestCheckInByScanRejectsMalformedPayload(t *testing.T) {
	c, rec := newTestContext(t, ScanCheckInRequest{Payload: "not-json"}, "8")

	require.NoError(t, CheckInByScan(nil)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid qr payload")
}

// A valid manual code presented at a different event's door must be rejected
// before any state changes.
func TestCompleteCheckInRejectsForeignEvent(t *testing.T) {
	c, rec := newTestContext(t, nil, "8")

	reg := &domain.Registration{ID: 11, EventID: 7, UserID: 2, CheckInCode: "ABCDEFGHJKLM"}
	require.NoError(t, completeCheckIn(c, nil, reg, 8))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrWrongEvent.Error())
}
