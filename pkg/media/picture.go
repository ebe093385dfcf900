// Package media decodes, bounds and re-encodes uploaded profile pictures.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension bounds the longest side of a stored picture.
	MaxDimension = 512
	// JPEGQuality is used when re-encoding.
	JPEGQuality = 85
	// MaxEncodedBytes bounds the decoded upload size.
	MaxEncodedBytes = 5 << 20
	// maxPixels rejects images whose header announces huge dimensions.
	maxPixels = 40_000_000
)

var (
	ErrNotDataURL       = errors.New("not a base64 image data URL")
	ErrTooLarge         = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
)

// IsDataURL reports whether s looks like a base64 image data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}

// DecodeDataURL returns the raw bytes carried by a data:image/...;base64, URL.
func DecodeDataURL(s string) ([]byte, error) {
	if !IsDataURL(s) {
		return nil, ErrNotDataURL
	}
	payload := s[strings.Index(s, ";base64,")+len(";base64,"):]
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxEncodedBytes {
		return nil, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	return data, nil
}

// fitWithin scales w x h down so that neither side exceeds max.
func fitWithin(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		return max, maxInt(1, h*max/w)
	}
	return maxInt(1, w*max/h), max
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Normalize decodes data (PNG, JPEG, GIF or WebP), shrinks it to fit
// MaxDimension and re-encodes it as JPEG.
func Normalize(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, ErrTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), MaxDimension)

	// white background so transparent PNGs do not turn black
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDataURL wraps JPEG bytes back into a data URL.
func ToDataURL(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
