package filters

import (
	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// remap builds a w x h image where output pixel (x, y) copies source pixel
// src(x, y). Rows are filled in parallel.
func remap(img *images.Image, w, h int, opt kernels.Options, src func(x, y int) (int, int)) *images.Image {
	out := images.New(w, h)
	eachRow(out, opt, func(y int, row []byte) {
		for x := 0; x < w; x++ {
			sx, sy := src(x, y)
			i := img.Offset(sx, sy)
			copy(row[x*3:x*3+3], img.Data[i:i+3])
		}
	})
	return out
}

// rotate90 turns the image a quarter turn clockwise.
func rotate90(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	h := img.Height
	return remap(img, img.Height, img.Width, opt, func(x, y int) (int, int) {
		return y, h - 1 - x
	}), nil
}

func rotate180(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	w, h := img.Width, img.Height
	return remap(img, w, h, opt, func(x, y int) (int, int) {
		return w - 1 - x, h - 1 - y
	}), nil
}

// rotate270 turns the image a quarter turn counterclockwise.
func rotate270(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	w := img.Width
	return remap(img, img.Height, img.Width, opt, func(x, y int) (int, int) {
		return w - 1 - y, x
	}), nil
}

func flipHorizontal(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	w := img.Width
	return remap(img, w, img.Height, opt, func(x, y int) (int, int) {
		return w - 1 - x, y
	}), nil
}

func flipVertical(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	h := img.Height
	out := images.New(img.Width, h)
	eachRow(out, opt, func(y int, row []byte) {
		copy(row, img.Row(h-1-y))
	})
	return out, nil
}
