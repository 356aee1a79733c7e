package qr

import qrcode "github.com/skip2/go-qrcode"

const defaultSize = 256

// EncodePNG renders the given URL as a PNG QR code.
func EncodePNG(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, defaultSize)
}
