package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// GenerateLinkQR encode une URL en QR code base64 prêt à mettre dans <img src="...">
func GenerateLinkQR(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
