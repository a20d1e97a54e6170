// Package qrimage renders QR rasters locally instead of relying on an
// external rendering endpoint.
package qrimage

import (
	"fmt"

	"github.com/menuqrs/menuqr/internal/interfaces"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	minSize     = 64
	maxSize     = 1024
	defaultSize = 200
)

type renderer struct{}

func NewRenderer() interfaces.QRImageRenderer {
	return renderer{}
}

// Render encodes payloadURL into a size x size PNG. Out-of-range sizes
// are clamped rather than rejected; zero means the default.
func (renderer) Render(payloadURL string, size int) ([]byte, error) {
	if size == 0 {
		size = defaultSize
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}

	png, err := qrcode.Encode(payloadURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr image: %w", err)
	}
	return png, nil
}
