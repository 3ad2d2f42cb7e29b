package filters

import (
	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// crop copies the requested rectangle, saturated to the image bounds. A
// rectangle that starts outside the image yields an empty image.
func crop(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	x0, y0 := p.Int("x"), p.Int("y")
	w := min(p.Int("width"), max(img.Width-x0, 0))
	h := min(p.Int("height"), max(img.Height-y0, 0))
	out := images.New(w, h)
	eachRow(out, opt, func(y int, row []byte) {
		i := img.Offset(x0, y0+y)
		copy(row, img.Data[i:i+len(row)])
	})
	return out, nil
}
