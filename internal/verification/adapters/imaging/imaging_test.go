package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycverify/internal/verification/ports"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheckImage(t *testing.T) {
	c := New()

	assert.NoError(t, c.CheckImage(ports.ImageSelfie, pngBytes(t, 4, 4)))

	err := c.CheckImage(ports.ImageSelfie, []byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, ports.IsUnreadableImage(err))
	assert.Equal(t, ports.ImageSelfie, ports.ImageOf(err))

	err = c.CheckImage(ports.ImageIDBack, nil)
	assert.True(t, ports.IsUnreadableImage(err))
	assert.Equal(t, ports.ImageIDBack, ports.ImageOf(err))
}
