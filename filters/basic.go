package filters

import (
	"github.com/samber/lo"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

func grayscale(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		l := images.Luma(r, g, b)
		return l, l, l
	}), nil
}

func brightness(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	v := p.Int("value")
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		return clampInt(int(r) + v), clampInt(int(g) + v), clampInt(int(b) + v)
	}), nil
}

func contrast(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	f := p.Float32("factor")
	adjust := func(c uint8) uint8 {
		return clampByte(f*(float32(c)-128) + 128)
	}
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		return adjust(r), adjust(g), adjust(b)
	}), nil
}

func boxBlur(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	return kernels.BoxBlur(img, p.Int("radius"), opt)
}

func gaussianBlur(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	return kernels.GaussianBlur(img, p["sigma"], opt)
}

// sharpenKernel is the 3x3 Laplacian sharpening kernel.
var sharpenKernel = [3][3]float32{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// sharpen blends each interior pixel with its sharpened value. The one-pixel
// border has no full neighborhood and stays black.
func sharpen(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	s := p.Float32("strength")
	w, h := img.Width, img.Height
	out := images.New(w, h)
	eachRow(out, opt, func(y int, row []byte) {
		if y == 0 || y == h-1 {
			return
		}
		for x := 1; x < w-1; x++ {
			var sum [3]float32
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					k := sharpenKernel[ky][kx]
					if k == 0 {
						continue
					}
					r, g, b := img.At(x+kx-1, y+ky-1)
					sum[0] += float32(r) * k
					sum[1] += float32(g) * k
					sum[2] += float32(b) * k
				}
			}
			r, g, b := img.At(x, y)
			o := row[x*3 : x*3+3 : x*3+3]
			o[0] = clampByte(float32(r)*(1-s) + sum[0]*s)
			o[1] = clampByte(float32(g)*(1-s) + sum[1]*s)
			o[2] = clampByte(float32(b)*(1-s) + sum[2]*s)
		}
	})
	return out, nil
}

func thresholding(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	t := uint8(lo.Clamp(p.Int("threshold"), 0, 255))
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		if images.Luma(r, g, b) > t {
			return 255, 255, 255
		}
		return 0, 0, 0
	}), nil
}
