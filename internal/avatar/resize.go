package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/dmitrijs2005/trackly/internal/common"
)

// Size is the bounding box every stored avatar is scaled into.
const Size = 256

// Resize decodes img, scales it to fit within Size x Size keeping the aspect
// ratio and re-encodes the result as PNG. Callers pass the output of Decode.
func Resize(img *Image) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImage, err)
	}

	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), Size)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return &Image{Data: buf.Bytes(), Format: "png", Width: w, Height: h}, nil
}

// fitWithin scales w x h so the longer side equals size.
func fitWithin(w, h, size int) (int, int) {
	if w >= h {
		return size, max(1, (h*size+w/2)/w)
	}
	return max(1, (w*size+h/2)/h), size
}
