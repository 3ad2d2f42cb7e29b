package kernels

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imagefx/images"
)

// onModeEmit, when set, observes the histogram at every emitted window.
// Tests use it to check that bucket counts always sum to the window size.
var onModeEmit func(h *HistogramAccumulator, lo, hi int)

// OilPaint applies the oil-painting mode filter: every output pixel takes the
// mean color of the most populated intensity bucket in its neighborhood.
//
// The neighborhood is processed separably: a horizontal pass writes the
// dominant-bucket mean of each row window into an intermediate image, then a
// vertical pass repeats the mode filter over that image's columns. This is
// an approximation of the full 2D mode and is the intended output.
//
// Intensity buckets are floor((r+g+b)*buckets/768), clamped to buckets-1.
// Ties between buckets go to the lowest bucket index.
//
// Arguments:
// - img: The source image. It is never modified.
// - radius: The window radius; negative values act as 0.
// - buckets: The number of intensity buckets, at least 1. Values above
// MaxBuckets behave exactly like MaxBuckets.
// - opt: Parallelism, pooling and progress settings.
//
// Returns:
// - A new image.
// - ErrInvalidBuckets if buckets < 1, ErrInvalidImage if img fails validation.
//
// @example
// out, err := OilPaint(img, 4, 20, Options{Parallel: true})
func OilPaint(img *images.Image, radius, buckets int, opt Options) (*images.Image, error) {
	if buckets < 1 {
		return nil, errors.Wrapf(ErrInvalidBuckets, "oil paint: buckets=%d", buckets)
	}
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(err, "oil paint")
	}
	w, h := img.Width, img.Height
	r := max(radius, 0)
	if buckets > MaxBuckets {
		images.Logger().Debug("oil paint: clamping buckets", "requested", buckets, "used", MaxBuckets)
		buckets = MaxBuckets
	}

	ex := NewExecutor(opt, 2*w+2*h)
	ex.Start()
	defer ex.Finish()

	if r == 0 || w == 0 || h == 0 {
		return img.Clone(), nil
	}
	images.Logger().Debug("oil paint", "width", w, "height", h, "radius", r, "buckets", buckets)

	n := w * h * images.Channels

	mid := opt.Pool.GetBytes(n)
	defer opt.Pool.PutBytes(mid)
	ForEachRow(ex, mid, w*images.Channels, func(y int, out []byte) {
		slideMode(img.Row(y), out, w, r, buckets)
	})

	midT := opt.Pool.GetBytes(n)
	defer opt.Pool.PutBytes(midT)
	transpose(ex, mid, w, h, images.Channels, midT)

	outT := opt.Pool.GetBytes(n)
	defer opt.Pool.PutBytes(outT)
	ForEachRow(ex, outT, h*images.Channels, func(x int, out []byte) {
		slideMode(midT[x*h*3:(x+1)*h*3], out, h, r, buckets)
	})

	dst := images.New(w, h)
	transpose(ex, outT, h, w, images.Channels, dst.Data)
	return dst, nil
}

// slideMode mode-filters one interleaved RGB line of n pixels into out.
func slideMode(line, out []byte, n, radius, buckets int) {
	hist := NewHistogramAccumulator(buckets)
	Slide(n, radius,
		func(i int) {
			p := line[i*3 : i*3+3 : i*3+3]
			hist.Add(p[0], p[1], p[2])
		},
		func(i int) {
			p := line[i*3 : i*3+3 : i*3+3]
			hist.Remove(p[0], p[1], p[2])
		},
		func(pos, lo, hi int) {
			if onModeEmit != nil {
				onModeEmit(hist, lo, hi)
			}
			_, m := hist.Dominant()
			o := out[pos*3 : pos*3+3 : pos*3+3]
			o[0], o[1], o[2] = m[0], m[1], m[2]
		},
	)
}
