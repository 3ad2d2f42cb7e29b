package filters

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// RGBToHSL converts an RGB triple to hue in degrees [0, 360), saturation and
// lightness in [0, 1].
func RGBToHSL(r, g, b uint8) (h, s, l float32) {
	rf, gf, bf := float32(r)/255, float32(g)/255, float32(b)/255
	hi := max(rf, gf, bf)
	lo := min(rf, gf, bf)
	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}
	switch hi {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	return h * 60, s, l
}

// HSLToRGB converts hue in degrees, saturation and lightness back to RGB,
// rounding each channel to the nearest byte.
func HSLToRGB(h, s, l float32) (r, g, b uint8) {
	if s == 0 {
		v := unitToByte(l)
		return v, v, v
	}
	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hn := h / 360
	return unitToByte(hueToRGB(p, q, hn+1.0/3)), unitToByte(hueToRGB(p, q, hn)), unitToByte(hueToRGB(p, q, hn-1.0/3))
}

func hueToRGB(p, q, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// unitToByte maps [0, 1] to the nearest byte.
func unitToByte(v float32) uint8 {
	return clampByte(math32.Floor(v*255 + 0.5))
}

func saturate(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	f := p.Float32("factor")
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		h, s, l := RGBToHSL(r, g, b)
		return HSLToRGB(h, min(max(s*f, 0), 1), l)
	}), nil
}

func invert(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		return 255 - r, 255 - g, 255 - b
	}), nil
}

func hueRotate(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	deg := p.Float32("degrees")
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		h, s, l := RGBToHSL(r, g, b)
		h = math32.Mod(h+deg, 360)
		if h < 0 {
			h += 360
		}
		return HSLToRGB(h, s, l)
	}), nil
}
