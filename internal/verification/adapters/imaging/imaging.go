// Package imaging rejects uploads that do not decode as an image before any
// sidecar is called.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"kycverify/internal/verification/ports"
)

const adapterName = "imaging"

// MaxPixels bounds decoded image size; larger headers are treated as unreadable.
const MaxPixels = 40_000_000

var errEmpty = errors.New("empty image")

// Checker implements ports.ImageChecker using header-only decoding.
type Checker struct{}

func New() *Checker {
	return &Checker{}
}

// CheckImage returns an UnreadableImage error naming role when data is not a
// supported image (JPEG, PNG, GIF, WebP).
func (c *Checker) CheckImage(role string, data []byte) error {
	if len(data) == 0 {
		return ports.UnreadableImage(adapterName, role, errEmpty)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ports.UnreadableImage(adapterName, role, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return ports.UnreadableImage(adapterName, role,
			fmt.Errorf("%s image has unusable dimensions %dx%d", format, cfg.Width, cfg.Height))
	}
	return nil
}
