package kernels

import (
	"math/rand"

	"github.com/nvr-ai/go-imagefx/images"
)

// genImage returns a w x h image filled with seeded random noise.
func genImage(w, h int, seed int64) *images.Image {
	img := images.New(w, h)
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Data {
		img.Data[i] = uint8(rng.Intn(256))
	}
	return img
}

// genBlocky returns an image made of a few flat colors so that oil-paint
// histograms see real ties and dominant buckets.
func genBlocky(w, h int, seed int64) *images.Image {
	palette := [][3]uint8{{0, 0, 0}, {250, 250, 250}, {200, 30, 30}, {30, 200, 30}, {90, 90, 200}}
	img := images.New(w, h)
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := palette[rng.Intn(len(palette))]
			img.Set(x, y, c[0], c[1], c[2])
		}
	}
	return img
}

// bruteBoxBlur averages the clamped (2r+1)^2 window of every pixel directly.
func bruteBoxBlur(img *images.Image, r int) *images.Image {
	out := images.New(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var sum [3]int
			count := 0
			for yy := max(0, y-r); yy <= min(img.Height-1, y+r); yy++ {
				for xx := max(0, x-r); xx <= min(img.Width-1, x+r); xx++ {
					cr, cg, cb := img.At(xx, yy)
					sum[0] += int(cr)
					sum[1] += int(cg)
					sum[2] += int(cb)
					count++
				}
			}
			out.Set(x, y, uint8(sum[0]/count), uint8(sum[1]/count), uint8(sum[2]/count))
		}
	}
	return out
}

// bruteMode returns the dominant-bucket mean of the given pixels, ties to the
// lowest bucket, recomputing the histogram from scratch.
func bruteMode(px [][3]uint8, buckets int) [3]uint8 {
	counts := make([]int, buckets)
	sums := make([][3]int, buckets)
	for _, p := range px {
		i := min((int(p[0])+int(p[1])+int(p[2]))*buckets/768, buckets-1)
		counts[i]++
		sums[i][0] += int(p[0])
		sums[i][1] += int(p[1])
		sums[i][2] += int(p[2])
	}
	best := 0
	for i := 1; i < buckets; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	if counts[best] == 0 {
		return [3]uint8{}
	}
	n := counts[best]
	return [3]uint8{uint8(sums[best][0] / n), uint8(sums[best][1] / n), uint8(sums[best][2] / n)}
}

// bruteSeparableOil runs the two-pass mode filter without any sliding state.
func bruteSeparableOil(img *images.Image, r, buckets int) *images.Image {
	w, h := img.Width, img.Height
	mid := images.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var px [][3]uint8
			for xx := max(0, x-r); xx <= min(w-1, x+r); xx++ {
				cr, cg, cb := img.At(xx, y)
				px = append(px, [3]uint8{cr, cg, cb})
			}
			m := bruteMode(px, buckets)
			mid.Set(x, y, m[0], m[1], m[2])
		}
	}
	out := images.New(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var px [][3]uint8
			for yy := max(0, y-r); yy <= min(h-1, y+r); yy++ {
				cr, cg, cb := mid.At(x, yy)
				px = append(px, [3]uint8{cr, cg, cb})
			}
			m := bruteMode(px, buckets)
			out.Set(x, y, m[0], m[1], m[2])
		}
	}
	return out
}
