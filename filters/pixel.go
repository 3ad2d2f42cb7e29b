package filters

import (
	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// pixelFunc maps one RGB triple to another.
type pixelFunc func(r, g, b uint8) (uint8, uint8, uint8)

// mapPixels applies fn to every pixel of img, one output row per work unit.
func mapPixels(img *images.Image, opt kernels.Options, fn pixelFunc) *images.Image {
	out := images.New(img.Width, img.Height)
	eachRow(out, opt, func(y int, row []byte) {
		src := img.Row(y)
		for i := 0; i+2 < len(row); i += images.Channels {
			row[i], row[i+1], row[i+2] = fn(src[i], src[i+1], src[i+2])
		}
	})
	return out
}

// eachRow fills out row by row with progress from 0 to 1.
func eachRow(out *images.Image, opt kernels.Options, fn func(y int, row []byte)) {
	ex := kernels.NewExecutor(opt, out.Height)
	ex.Start()
	defer ex.Finish()
	kernels.ForEachRow(ex, out.Data, out.Stride(), fn)
}

// clampByte truncates v into [0, 255].
func clampByte(v float32) uint8 {
	switch {
	case v != v, v <= 0: // NaN or negative
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// clampInt saturates v into [0, 255].
func clampInt(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
