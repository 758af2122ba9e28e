// Package avatar validates uploaded profile images, scales them down to a
// fixed size and stores them, either in a local directory or in an
// S3-compatible bucket. Stores return a locator string that the caller
// persists on the user record.
package avatar

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/dmitrijs2005/trackly/internal/common"
)

const (
	MaxBytes     = 5 << 20
	MaxDimension = 4096
)

// Image is a validated avatar payload.
type Image struct {
	Data          []byte
	Format        string
	Width, Height int
}

func (i *Image) Ext() string {
	if i.Format == "jpeg" {
		return "jpg"
	}
	return i.Format
}

func (i *Image) ContentType() string {
	return "image/" + i.Format
}

// Decode checks that data is a PNG, JPEG, GIF or WebP within the size limits.
// Every rejection wraps common.ErrInvalidImage.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", common.ErrInvalidImage)
	}
	if len(data) > MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", common.ErrInvalidImage, len(data), MaxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return nil, fmt.Errorf("%w: unsupported dimensions %dx%d", common.ErrInvalidImage, cfg.Width, cfg.Height)
	}

	return &Image{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
