package images

import (
	"github.com/pkg/errors"
)

// Rec.709 luma weights scaled by 10000 so conversion stays in integer math.
const (
	lumaR     = 2126
	lumaG     = 7152
	lumaB     = 722
	lumaScale = 10000
)

// Gray is a single-channel luma raster, one byte per pixel, row-major.
type Gray struct {
	Width  int
	Height int
	Pix    []byte
}

// NewGray allocates a black luma raster.
func NewGray(width, height int) *Gray {
	width = max(width, 0)
	height = max(height, 0)
	return &Gray{Width: width, Height: height, Pix: make([]byte, width*height)}
}

// Validate checks len(Pix) == Width*Height.
func (g *Gray) Validate() error {
	if g == nil {
		return errors.Wrap(ErrInvalidImage, "gray image is nil")
	}
	if g.Width < 0 || g.Height < 0 || len(g.Pix) != g.Width*g.Height {
		return errors.Wrapf(ErrInvalidImage, "%dx%d gray image has %d bytes", g.Width, g.Height, len(g.Pix))
	}
	return nil
}

// Luma returns the Rec.709 luma of an RGB triple.
func Luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b)) / lumaScale)
}

// ToGray converts an RGB image to its luma plane.
//
// Arguments:
// - img: The source image.
//
// Returns:
// - A new Gray raster with the same dimensions.
func ToGray(img *Image) *Gray {
	out := NewGray(img.Width, img.Height)
	for i := 0; i < len(out.Pix); i++ {
		p := img.Data[i*Channels : i*Channels+Channels : i*Channels+Channels]
		out.Pix[i] = Luma(p[0], p[1], p[2])
	}
	return out
}
