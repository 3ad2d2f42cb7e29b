package kernels

import (
	"math"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imagefx/images"
)

// BoxBlur applies a separable box blur to an image.
// - The horizontal pass slides a window along every row and stores raw
// per-pixel channel sums (no division yet).
// - The vertical pass runs the same sliding window over the transposed sum
// plane and divides once by the full 2D window population.
// - Windows saturate at the edges: the window at (x, y) is the clamped
// rectangle [x-r, x+r] x [y-r, y+r].
//
// Because nothing is rounded between passes, every output channel equals
// floor(sum / count) over the clamped 2D window, bit for bit.
//
// Performance: O(W*H) per pass, independent of radius.
//
// Arguments:
// - img: The source image. It is never modified.
// - radius: The window radius; negative values act as 0.
// - opt: Parallelism, pooling and progress settings.
//
// Returns:
// - A new image, or ErrInvalidImage if img fails validation.
//
// @example
// out, err := BoxBlur(img, 5, Options{Parallel: true})
func BoxBlur(img *images.Image, radius int, opt Options) (*images.Image, error) {
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(err, "box blur")
	}
	w, h := img.Width, img.Height
	r := max(radius, 0)

	ex := NewExecutor(opt, 2*w+2*h)
	ex.Start()
	defer ex.Finish()

	if r == 0 || w == 0 || h == 0 {
		return img.Clone(), nil
	}
	images.Logger().Debug("box blur", "width", w, "height", h, "radius", r, "parallel", opt.Parallel)

	n := w * h * images.Channels

	// 1) Horizontal: row sums, w x h.
	sums := opt.Pool.GetSums(n)
	defer opt.Pool.PutSums(sums)
	ForEachRow(ex, sums, w*images.Channels, func(y int, out []uint32) {
		slideSums(img.Row(y), w, r, func(x int, acc *SumAccumulator) {
			s := acc.Sum()
			o := out[x*3 : x*3+3 : x*3+3]
			o[0], o[1], o[2] = uint32(s[0]), uint32(s[1]), uint32(s[2])
		})
	})

	// 2) Columns become rows: h x w.
	cols := opt.Pool.GetSums(n)
	defer opt.Pool.PutSums(cols)
	transpose(ex, sums, w, h, images.Channels, cols)

	// 3) Vertical: each transposed row x is original column x, whose
	// horizontal windows all held windowSpan(x, w, r) pixels.
	blurredT := opt.Pool.GetBytes(n)
	defer opt.Pool.PutBytes(blurredT)
	ForEachRow(ex, blurredT, h*images.Channels, func(x int, out []byte) {
		cx := windowSpan(x, w, r)
		slideSums(cols[x*h*3:(x+1)*h*3], h, r, func(y int, acc *SumAccumulator) {
			m := acc.MeanScaled(cx)
			o := out[y*3 : y*3+3 : y*3+3]
			o[0], o[1], o[2] = m[0], m[1], m[2]
		})
	})

	// 4) Back to w x h.
	dst := images.New(w, h)
	transpose(ex, blurredT, h, w, images.Channels, dst.Data)
	return dst, nil
}

// slideSums runs the sliding schedule over one interleaved RGB line of n
// pixels, handing the running sum for every position to emit.
func slideSums[T uint8 | uint32](line []T, n, radius int, emit func(pos int, acc *SumAccumulator)) {
	var acc SumAccumulator
	Slide(n, radius,
		func(i int) {
			p := line[i*3 : i*3+3 : i*3+3]
			acc.Add(uint64(p[0]), uint64(p[1]), uint64(p[2]))
		},
		func(i int) {
			p := line[i*3 : i*3+3 : i*3+3]
			acc.Remove(uint64(p[0]), uint64(p[1]), uint64(p[2]))
		},
		func(pos, _, _ int) { emit(pos, &acc) },
	)
}

// GaussianRadius maps a gaussian sigma onto the box radius used to
// approximate it: round(2*sigma). Non-finite or non-positive sigmas map to 0.
func GaussianRadius(sigma float64) int {
	if math.IsNaN(sigma) || sigma <= 0 {
		return 0
	}
	if math.IsInf(sigma, 1) || sigma > math.MaxInt32/2 {
		return math.MaxInt32
	}
	return int(math.Round(2 * sigma))
}

// GaussianBlur approximates a gaussian blur with a single box blur of radius
// round(2*sigma). It is not a true gaussian and makes no claim to be one.
//
// Arguments:
// - img: The source image.
// - sigma: The gaussian standard deviation in pixels.
// - opt: Parallelism, pooling and progress settings.
//
// Returns:
// - A new blurred image, or ErrInvalidImage if img fails validation.
func GaussianBlur(img *images.Image, sigma float64, opt Options) (*images.Image, error) {
	r := GaussianRadius(sigma)
	images.Logger().Debug("gaussian blur", "sigma", sigma, "radius", r)
	return BoxBlur(img, r, opt)
}
