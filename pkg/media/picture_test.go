package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestNormalizeShrinksLargeImages(t *testing.T) {
	raw, err := DecodeDataURL(pngDataURL(t, 1024, 256))
	require.NoError(t, err)

	out, err := Normalize(raw)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	raw, err := DecodeDataURL(pngDataURL(t, 40, 60))
	require.NoError(t, err)

	out, err := Normalize(raw)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestDecodeDataURLErrors(t *testing.T) {
	_, err := DecodeDataURL("https://cdn.example.com/me.png")
	assert.ErrorIs(t, err, ErrNotDataURL)

	_, err = DecodeDataURL("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrNotDataURL)

	_, err = Normalize([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(2000, 1000, 512)
	assert.Equal(t, []int{512, 256}, []int{w, h})
	w, h = fitWithin(10, 5000, 512)
	assert.Equal(t, []int{1, 512}, []int{w, h})
}
