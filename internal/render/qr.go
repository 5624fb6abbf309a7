package render

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRSize is the edge length of join QR codes, in pixels
const DefaultQRSize = 256

// JoinURL builds the link players open to join a room
func JoinURL(publicURL, code string) string {
	return strings.TrimRight(publicURL, "/") + "/room/" + code
}

// JoinQRCode renders the join link for a room as a PNG
func JoinQRCode(publicURL, code string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(JoinURL(publicURL, code), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code for room %s: %w", code, err)
	}
	return png, nil
}
