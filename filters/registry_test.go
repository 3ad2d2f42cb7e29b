package filters

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

func randomImage(w, h int, seed int64) *images.Image {
	img := images.New(w, h)
	rng := rand.New(rand.NewSource(seed))
	for i := range img.Data {
		img.Data[i] = uint8(rng.Intn(256))
	}
	return img
}

func flatImage(w, h int, r, g, b uint8) *images.Image {
	img := images.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, r, g, b)
		}
	}
	return img
}

func TestNamesAreSortedAndComplete(t *testing.T) {
	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.ElementsMatch(t, []string{
		"grayscale", "brightness", "contrast", "gaussian-blur", "box-blur", "sharpen",
		"edge-detection", "thresholding", "saturate", "invert", "hue-rotate",
		"rotate90", "rotate180", "rotate270", "flip-horizontal", "flip-vertical",
		"sepia", "vignette", "noise", "oil", "crop",
	}, names)
	assert.Len(t, Specs(), len(names))

	total := 0
	for _, c := range Categories {
		total += len(ByCategory(c))
	}
	assert.Equal(t, len(names), total, "every filter belongs to a listed category")
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("posterize")
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = Apply("posterize", randomImage(2, 2, 1), nil, nil)
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestResolve(t *testing.T) {
	spec, err := Lookup("oil")
	require.NoError(t, err)

	p, err := spec.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, Params{"radius": 4, "levels": 20}, p)

	p, err = spec.Resolve(Params{"radius": 7})
	require.NoError(t, err)
	assert.Equal(t, Params{"radius": 7, "levels": 20}, p)

	tests := []struct {
		name   string
		params Params
	}{
		{"below range", Params{"radius": 0}},
		{"above range", Params{"levels": 51}},
		{"fractional integer", Params{"radius": 2.5}},
		{"nan", Params{"radius": math.NaN()}},
		{"undeclared", Params{"sigma": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spec.Resolve(tt.params)
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams([]string{"radius=4", " levels = 20 ", "sigma=1.5"})
	require.NoError(t, err)
	assert.Equal(t, Params{"radius": 4, "levels": 20, "sigma": 1.5}, p)

	for _, bad := range []string{"radius", "=3", "radius=abc"} {
		_, err := ParseParams([]string{bad})
		assert.ErrorIs(t, err, ErrInvalidParam, bad)
	}
}

func TestApplyEveryFilter(t *testing.T) {
	img := randomImage(17, 11, 3)
	before := img.Clone()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			var samples []float64
			rep := kernels.ReporterFunc(func(p float64) { samples = append(samples, p) })
			out, err := ApplyWithOptions(name, img, nil, kernels.Options{Progress: rep})
			require.NoError(t, err)
			require.NoError(t, out.Validate())
			assert.True(t, before.Equal(img), "input must not be modified")

			require.NotEmpty(t, samples)
			assert.Equal(t, 0.0, samples[0])
			assert.Equal(t, 1.0, samples[len(samples)-1])

			switch name {
			case "rotate90", "rotate270":
				assert.Equal(t, [2]int{11, 17}, [2]int{out.Width, out.Height})
			default:
				assert.Equal(t, [2]int{17, 11}, [2]int{out.Width, out.Height})
			}
		})
	}
}

func TestApplyParallelMatchesSequential(t *testing.T) {
	img := randomImage(64, 48, 9)
	for _, name := range Names() {
		seq, err := ApplyWithOptions(name, img, nil, kernels.Options{})
		require.NoError(t, err)
		par, err := ApplyWithOptions(name, img, nil, kernels.Options{Parallel: true, Workers: 4})
		require.NoError(t, err)
		assert.True(t, seq.Equal(par), name)
	}
}

func TestApplyInvalidImage(t *testing.T) {
	_, err := Apply("invert", &images.Image{Width: 2, Height: 2, Data: []byte{1}}, nil, nil)
	assert.ErrorIs(t, err, images.ErrInvalidImage)
}

func TestApplyInvalidParam(t *testing.T) {
	_, err := Apply("brightness", randomImage(2, 2, 1), Params{"value": 500}, nil)
	assert.ErrorIs(t, err, ErrInvalidParam)
}
