package filters

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// noiseSeedBase is mixed with the row index to seed each row's generator.
const noiseSeedBase uint64 = 0x5eed_1e55_c0ff_ee42

// SeedForRow returns the generator seed for one row of the noise filter.
// The mapping is a pure function of the row index, so a noise pass is
// reproducible no matter how rows are scheduled across workers.
func SeedForRow(row int) uint64 {
	// splitmix64 finalizer
	z := noiseSeedBase + uint64(row)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func sepia(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	return mapPixels(img, opt, func(r, g, b uint8) (uint8, uint8, uint8) {
		rf, gf, bf := float32(r), float32(g), float32(b)
		return clampByte(rf*0.393 + gf*0.769 + bf*0.189),
			clampByte(rf*0.349 + gf*0.686 + bf*0.168),
			clampByte(rf*0.272 + gf*0.534 + bf*0.131)
	}), nil
}

// vignette darkens pixels in proportion to their distance from the center.
func vignette(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	strength := p.Float32("strength")
	cx, cy := float32(img.Width)/2, float32(img.Height)/2
	maxDist := math32.Sqrt(cx*cx + cy*cy)
	out := images.New(img.Width, img.Height)
	eachRow(out, opt, func(y int, row []byte) {
		src := img.Row(y)
		dy := float32(y) - cy
		for x := 0; x < img.Width; x++ {
			dx := float32(x) - cx
			f := float32(1)
			if maxDist > 0 {
				f = 1 - min(max(math32.Sqrt(dx*dx+dy*dy)/maxDist*strength, 0), 1)
			}
			i := x * 3
			row[i] = clampByte(float32(src[i]) * f)
			row[i+1] = clampByte(float32(src[i+1]) * f)
			row[i+2] = clampByte(float32(src[i+2]) * f)
		}
	})
	return out, nil
}

// noise adds uniform per-channel noise in [-strength, strength]. Each row
// draws from its own generator seeded by SeedForRow and the seed parameter.
func noise(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	s := p.Int("strength")
	seed := uint64(p.Int("seed"))
	out := images.New(img.Width, img.Height)
	eachRow(out, opt, func(y int, row []byte) {
		rng := rand.New(rand.NewPCG(SeedForRow(y), seed))
		src := img.Row(y)
		for i, c := range src {
			row[i] = clampInt(int(c) + rng.IntN(2*s+1) - s)
		}
	})
	return out, nil
}

func oil(img *images.Image, p Params, opt kernels.Options) (*images.Image, error) {
	return kernels.OilPaint(img, p.Int("radius"), p.Int("levels"), opt)
}
