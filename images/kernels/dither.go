package kernels

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imagefx/images"
)

// Floyd-Steinberg weights, in sixteenths.
const (
	weightEast      = 7.0 / 16.0
	weightSouthWest = 3.0 / 16.0
	weightSouth     = 5.0 / 16.0
	weightSouthEast = 1.0 / 16.0
)

// DitherOptions controls how luma is mapped onto a character ramp.
type DitherOptions struct {
	// ContrastBoost scales brightness around mid-gray; 1 leaves it unchanged.
	ContrastBoost float32 `json:"contrastBoost" yaml:"contrastBoost"`
	// Invert flips brightness after the contrast step.
	Invert bool `json:"invert" yaml:"invert"`
	// Dither enables Floyd-Steinberg error diffusion before mapping.
	Dither bool `json:"dither" yaml:"dither"`
}

// ASCIIArt is the result of mapping a luma raster onto a ramp.
type ASCIIArt struct {
	Width   int
	Height  int
	Indices []int  // One ramp index per pixel, row-major.
	Text    string // Ramp glyphs with '\n' after every row.
}

// diffusionStats records where quantization error went during one diffusion sweep.
type diffusionStats struct {
	Error      float64 // Sum of (value - quantized) over every pixel.
	Propagated float64 // Error added to in-bounds neighbors.
	Dropped    float64 // Error aimed at neighbors outside the raster.
}

// Dither maps a luma raster onto ramp indices, optionally diffusing the
// quantization error of every pixel onto its unvisited neighbors.
//
// The diffusion sweep is strictly sequential in raster order: each pixel's
// value depends on the error of pixels before it, so it never runs in parallel.
//
// Arguments:
// - gray: The luma raster, already sized to the character grid.
// - ramp: Glyphs from darkest to lightest; must not be empty.
// - opt: Contrast, invert and dither settings.
// - rep: Optional progress observer.
//
// Returns:
// - The ASCII art, or ErrEmptyRamp / ErrDimensionMismatch before any work.
//
// @example
// art, err := Dither(gray, []rune("@%#*+=-:. "), DitherOptions{ContrastBoost: 1.2, Dither: true}, nil)
func Dither(gray *images.Gray, ramp []rune, opt DitherOptions, rep Reporter) (*ASCIIArt, error) {
	if len(ramp) == 0 {
		return nil, ErrEmptyRamp
	}
	if gray == nil {
		return nil, errors.Wrap(ErrDimensionMismatch, "dither: nil raster")
	}
	if gray.Width < 0 || gray.Height < 0 || len(gray.Pix) != gray.Width*gray.Height {
		return nil, errors.Wrapf(ErrDimensionMismatch, "dither: %dx%d raster has %d bytes",
			gray.Width, gray.Height, len(gray.Pix))
	}
	w, h := gray.Width, gray.Height
	levels := len(ramp)
	boost := opt.ContrastBoost
	if math32.IsNaN(boost) || math32.IsInf(boost, 0) {
		images.Logger().Debug("dither: non-finite contrast boost, using 1", "boost", boost)
		boost = 1
	}

	track := newTracker(rep, 2*h)
	track.start()
	defer track.finish()

	bright := gray.Pix
	if opt.Dither && levels > 1 {
		state := make([]float32, len(gray.Pix))
		for i, p := range gray.Pix {
			state[i] = float32(p)
		}
		stats := diffuse(state, w, h, levels, track)
		images.Logger().Debug("dither: diffusion done", "error", stats.Error, "dropped", stats.Dropped)

		bright = make([]byte, len(state))
		for i, v := range state {
			bright[i] = toByte(v)
		}
	} else {
		track.advance(h)
	}

	art := &ASCIIArt{Width: w, Height: h, Indices: make([]int, w*h)}
	var sb strings.Builder
	sb.Grow(w*h + h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			idx := rampIndex(bright[i], levels, boost, opt.Invert)
			art.Indices[i] = idx
			sb.WriteRune(ramp[idx])
		}
		sb.WriteByte('\n')
		track.advance(1)
	}
	art.Text = sb.String()
	return art, nil
}

// quantize snaps v to the nearest of levels evenly spaced values in [0, 255].
// The level index is not clamped, so a diffused value past either end keeps
// its overshoot in the error it passes on.
func quantize(v float32, levels int) float32 {
	n := float32(levels - 1)
	return math32.Round(v/255*n) / n * 255
}

// diffuse runs the Floyd-Steinberg sweep over state in place, replacing each
// value with its quantized level. Error headed outside the raster is dropped.
func diffuse(state []float32, w, h, levels int, track *tracker) diffusionStats {
	var stats diffusionStats
	push := func(x, y int, e float32) {
		if x < 0 || x >= w || y >= h {
			stats.Dropped += float64(e)
			return
		}
		state[y*w+x] += e
		stats.Propagated += float64(e)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := state[i]
			q := quantize(old, levels)
			state[i] = q
			e := old - q
			stats.Error += float64(e)

			push(x+1, y, e*weightEast)
			push(x-1, y+1, e*weightSouthWest)
			push(x, y+1, e*weightSouth)
			push(x+1, y+1, e*weightSouthEast)
		}
		track.advance(1)
	}
	return stats
}

// rampIndex applies contrast, then invert, then picks the nearest ramp slot.
func rampIndex(b byte, levels int, boost float32, invert bool) int {
	v := float32(b)
	v = ((v/255-0.5)*boost + 0.5) * 255
	v = min(max(v, 0), 255)
	if invert {
		v = 255 - v
	}
	idx := int(math32.Round(v / 255 * float32(levels-1)))
	return min(max(idx, 0), levels-1)
}

// toByte clamps v to [0, 255] and truncates the fraction.
func toByte(v float32) byte {
	if math32.IsNaN(v) {
		return 0
	}
	return byte(min(max(v, 0), 255))
}

