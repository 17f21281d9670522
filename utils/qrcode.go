package utils

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// TicketQRCode renders the ticket payload as a PNG QR code and returns it
// as a base64 data URL ready to embed in a client.
func TicketQRCode(data string) (string, error) {
	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
