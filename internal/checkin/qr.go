package checkin

import (
	"encoding/json"
	"fmt"
	"net/url"

	"campushub/internal/domain"
)

// PayloadType tags a scanned payload as an event check-in credential.
const PayloadType = "event_checkin"

// qrImageEndpoint renders the payload as a QR image; we never draw QR codes
// ourselves.
const qrImageEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// QRPayload is the JSON structure encoded into a registration's QR code.
type QRPayload struct {
	Type           string `json:"type"`
	EventID        int    `json:"event_id"`
	UserID         int    `json:"user_id"`
	RegistrationID int    `json:"registration_id"`
	QRCode         string `json:"qr_code"`
	CheckInCode    string `json:"check_in_code"`
}

func NewQRPayload(r *domain.Registration) QRPayload {
	return QRPayload{
		Type:           PayloadType,
		EventID:        r.EventID,
		UserID:         r.UserID,
		RegistrationID: r.ID,
		QRCode:         r.QRCode,
		CheckInCode:    r.CheckInCode,
	}
}

func (p QRPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return string(data), nil
}

// DecodeQRPayload parses a scanned payload and rejects anything that is not
// an event check-in credential.
func DecodeQRPayload(raw string) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return QRPayload{}, fmt.Errorf("decode qr payload: %w", err)
	}
	if p.Type != PayloadType {
		return QRPayload{}, fmt.Errorf("unexpected payload type %q", p.Type)
	}
	return p, nil
}

// ImageURL builds the external rendering-service URL for a payload.
func ImageURL(p QRPayload) (string, error) {
	data, err := p.Encode()
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("size", "300x300")
	q.Set("data", data)
	return qrImageEndpoint + "?" + q.Encode(), nil
}
