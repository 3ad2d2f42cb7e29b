package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

func apply(t *testing.T, name string, img *images.Image, p Params) *images.Image {
	t.Helper()
	out, err := Apply(name, img, p, nil)
	require.NoError(t, err)
	return out
}

func pixel(img *images.Image, x, y int) [3]uint8 {
	r, g, b := img.At(x, y)
	return [3]uint8{r, g, b}
}

func TestGrayscale(t *testing.T) {
	img := randomImage(8, 8, 1)
	out := apply(t, "grayscale", img, nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, g, b := img.At(x, y)
			l := images.Luma(r, g, b)
			assert.Equal(t, [3]uint8{l, l, l}, pixel(out, x, y))
		}
	}
}

func TestBrightnessSaturates(t *testing.T) {
	img := images.New(2, 1)
	img.Set(0, 0, 250, 10, 128)
	img.Set(1, 0, 5, 95, 0)

	up := apply(t, "brightness", img, Params{"value": 20})
	assert.Equal(t, [3]uint8{255, 30, 148}, pixel(up, 0, 0))

	down := apply(t, "brightness", img, Params{"value": -100})
	assert.Equal(t, [3]uint8{0, 0, 0}, pixel(down, 1, 0))
}

func TestContrast(t *testing.T) {
	img := images.New(1, 1)
	img.Set(0, 0, 100, 128, 200)

	same := apply(t, "contrast", img, Params{"factor": 1})
	assert.True(t, same.Equal(img))

	out := apply(t, "contrast", img, Params{"factor": 2})
	assert.Equal(t, [3]uint8{72, 128, 255}, pixel(out, 0, 0))
}

func TestSharpenKeepsFlatInteriorAndBlackBorder(t *testing.T) {
	img := flatImage(5, 4, 100, 100, 100)
	out := apply(t, "sharpen", img, Params{"strength": 1})
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if x == 0 || y == 0 || x == 4 || y == 3 {
				assert.Equal(t, [3]uint8{}, pixel(out, x, y), "border (%d,%d)", x, y)
			} else {
				assert.Equal(t, [3]uint8{100, 100, 100}, pixel(out, x, y), "interior (%d,%d)", x, y)
			}
		}
	}
}

func TestEdgeDetection(t *testing.T) {
	flat := apply(t, "edge-detection", flatImage(6, 6, 90, 90, 90), nil)
	assert.True(t, flat.Equal(images.New(6, 6)), "no edges in a flat image")

	// Left half black, right half white: a strong vertical edge.
	img := images.New(6, 3)
	for x := 3; x < 6; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, 255, 255, 255)
		}
	}
	out := apply(t, "edge-detection", img, nil)
	assert.Equal(t, [3]uint8{255, 255, 255}, pixel(out, 2, 1))
	assert.Equal(t, [3]uint8{}, pixel(out, 0, 1), "border stays black")
}

func TestThresholding(t *testing.T) {
	img := images.New(2, 1)
	img.Set(0, 0, 128, 128, 128)
	img.Set(1, 0, 129, 129, 129)
	out := apply(t, "thresholding", img, Params{"threshold": 128})
	assert.Equal(t, [3]uint8{0, 0, 0}, pixel(out, 0, 0))
	assert.Equal(t, [3]uint8{255, 255, 255}, pixel(out, 1, 0))
}

func TestInvertTwiceIsIdentity(t *testing.T) {
	img := randomImage(9, 4, 2)
	assert.True(t, apply(t, "invert", apply(t, "invert", img, nil), nil).Equal(img))
}

func TestHSLKnownColors(t *testing.T) {
	tests := []struct {
		rgb     [3]uint8
		h, s, l float32
	}{
		{[3]uint8{255, 0, 0}, 0, 1, 0.5},
		{[3]uint8{0, 255, 0}, 120, 1, 0.5},
		{[3]uint8{0, 0, 255}, 240, 1, 0.5},
		{[3]uint8{255, 255, 255}, 0, 0, 1},
		{[3]uint8{0, 0, 0}, 0, 0, 0},
	}
	for _, tt := range tests {
		h, s, l := RGBToHSL(tt.rgb[0], tt.rgb[1], tt.rgb[2])
		assert.InDelta(t, tt.h, h, 1e-3, "hue of %v", tt.rgb)
		assert.InDelta(t, tt.s, s, 1e-3, "saturation of %v", tt.rgb)
		assert.InDelta(t, tt.l, l, 1e-3, "lightness of %v", tt.rgb)

		r, g, b := HSLToRGB(h, s, l)
		assert.Equal(t, tt.rgb, [3]uint8{r, g, b})
	}
}

func TestHueRotateFullTurnIsNearIdentity(t *testing.T) {
	img := randomImage(16, 16, 4)
	for _, deg := range []float64{360, -360} {
		out := apply(t, "hue-rotate", img, Params{"degrees": deg})
		for i := range img.Data {
			assert.InDelta(t, int(img.Data[i]), int(out.Data[i]), 1, "byte %d", i)
		}
	}
}

func TestHueRotateRedToGreen(t *testing.T) {
	img := flatImage(1, 1, 255, 0, 0)
	out := apply(t, "hue-rotate", img, Params{"degrees": 120})
	assert.Equal(t, [3]uint8{0, 255, 0}, pixel(out, 0, 0))
}

func TestSaturateZeroIsGray(t *testing.T) {
	img := randomImage(6, 6, 5)
	out := apply(t, "saturate", img, Params{"factor": 0})
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			p := pixel(out, x, y)
			assert.Equal(t, p[0], p[1])
			assert.Equal(t, p[1], p[2])
		}
	}
}

func TestRotations(t *testing.T) {
	// 3 wide, 2 tall, each pixel tagged with its index.
	img := images.New(3, 2)
	for i := 0; i < 6; i++ {
		img.Set(i%3, i/3, uint8(i), 0, 0)
	}

	r90 := apply(t, "rotate90", img, nil)
	require.Equal(t, [2]int{2, 3}, [2]int{r90.Width, r90.Height})
	// Clockwise: the bottom-left pixel becomes the top-left one.
	assert.Equal(t, uint8(3), r90.Data[r90.Offset(0, 0)])
	assert.Equal(t, uint8(0), r90.Data[r90.Offset(1, 0)])
	assert.Equal(t, uint8(5), r90.Data[r90.Offset(0, 2)])

	r270 := apply(t, "rotate270", img, nil)
	require.Equal(t, [2]int{2, 3}, [2]int{r270.Width, r270.Height})
	assert.Equal(t, uint8(2), r270.Data[r270.Offset(0, 0)])
	assert.Equal(t, uint8(3), r270.Data[r270.Offset(1, 2)])

	assert.True(t, apply(t, "rotate270", r90, nil).Equal(img))
	r := img
	for i := 0; i < 4; i++ {
		r = apply(t, "rotate90", r, nil)
	}
	assert.True(t, r.Equal(img))

	both := apply(t, "flip-vertical", apply(t, "flip-horizontal", img, nil), nil)
	assert.True(t, apply(t, "rotate180", img, nil).Equal(both))
}

func TestFlips(t *testing.T) {
	img := randomImage(5, 3, 6)
	fh := apply(t, "flip-horizontal", img, nil)
	fv := apply(t, "flip-vertical", img, nil)
	assert.Equal(t, pixel(img, 0, 1), pixel(fh, 4, 1))
	assert.Equal(t, pixel(img, 3, 0), pixel(fv, 3, 2))
	assert.True(t, apply(t, "flip-horizontal", fh, nil).Equal(img))
}

func TestSepia(t *testing.T) {
	out := apply(t, "sepia", flatImage(1, 1, 255, 255, 255), nil)
	assert.Equal(t, [3]uint8{255, 255, 238}, pixel(out, 0, 0))

	black := apply(t, "sepia", images.New(2, 2), nil)
	assert.True(t, black.Equal(images.New(2, 2)))
}

func TestVignette(t *testing.T) {
	img := flatImage(4, 4, 200, 200, 200)
	out := apply(t, "vignette", img, Params{"strength": 1})
	assert.Equal(t, [3]uint8{200, 200, 200}, pixel(out, 2, 2), "center is untouched")
	corner := pixel(out, 0, 0)
	assert.Less(t, corner[0], uint8(200), "corners darken")
}

func TestNoiseIsReproducibleAndBounded(t *testing.T) {
	img := randomImage(40, 30, 7)
	a := apply(t, "noise", img, Params{"strength": 10, "seed": 3})
	b, err := ApplyWithOptions("noise", img, Params{"strength": 10, "seed": 3}, kernels.Options{Parallel: true, Workers: 7})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c := apply(t, "noise", img, Params{"strength": 10, "seed": 4})
	assert.False(t, a.Equal(c), "a different seed changes the noise")

	for i := range img.Data {
		assert.InDelta(t, int(img.Data[i]), int(a.Data[i]), 10)
	}
}

func TestSeedForRow(t *testing.T) {
	assert.Equal(t, SeedForRow(17), SeedForRow(17))
	seen := map[uint64]bool{}
	for row := 0; row < 1000; row++ {
		seen[SeedForRow(row)] = true
	}
	assert.Len(t, seen, 1000)
}

func TestOilMatchesKernel(t *testing.T) {
	img := randomImage(20, 12, 8)
	out := apply(t, "oil", img, Params{"radius": 2, "levels": 8})
	want, err := kernels.OilPaint(img, 2, 8, kernels.Options{})
	require.NoError(t, err)
	assert.True(t, want.Equal(out))
}

func TestBlursMatchKernel(t *testing.T) {
	img := randomImage(20, 12, 9)
	box := apply(t, "box-blur", img, Params{"radius": 3})
	gauss := apply(t, "gaussian-blur", img, Params{"sigma": 1.5})
	want, err := kernels.BoxBlur(img, 3, kernels.Options{})
	require.NoError(t, err)
	assert.True(t, want.Equal(box))
	assert.True(t, want.Equal(gauss))
}

func TestCropSaturates(t *testing.T) {
	img := randomImage(10, 8, 10)

	out := apply(t, "crop", img, Params{"x": 2, "y": 3, "width": 4, "height": 2})
	require.Equal(t, [2]int{4, 2}, [2]int{out.Width, out.Height})
	assert.Equal(t, pixel(img, 2, 3), pixel(out, 0, 0))
	assert.Equal(t, pixel(img, 5, 4), pixel(out, 3, 1))

	edge := apply(t, "crop", img, Params{"x": 8, "y": 6, "width": 100, "height": 100})
	assert.Equal(t, [2]int{2, 2}, [2]int{edge.Width, edge.Height})

	outside := apply(t, "crop", img, Params{"x": 20, "y": 0, "width": 5, "height": 5})
	assert.Equal(t, 0, outside.Width)
	assert.Empty(t, outside.Data)
}
