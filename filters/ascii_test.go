package filters

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

func TestDefaultAsciiConfig(t *testing.T) {
	cfg := DefaultAsciiConfig()
	assert.Equal(t, 120, cfg.MaxWidth)
	assert.InDelta(t, 1.2, cfg.ContrastBoost, 1e-6)
	assert.True(t, cfg.Dither)
	assert.False(t, cfg.Invert)
	assert.False(t, cfg.Detailed)
	assert.Equal(t, []rune(RampSimple), cfg.Ramp())

	cfg.Detailed = true
	assert.Len(t, cfg.Ramp(), 70)
}

func TestGridSize(t *testing.T) {
	cfg := AsciiConfig{MaxWidth: 120}
	cols, rows := cfg.GridSize(240, 120)
	assert.Equal(t, 120, cols)
	assert.Equal(t, 30, rows)

	_, rows = cfg.GridSize(1000, 1)
	assert.Equal(t, 1, rows, "at least one row")

	cols, rows = AsciiConfig{MaxWidth: 80}.GridSize(100, 75)
	assert.Equal(t, 80, cols)
	assert.Equal(t, 30, rows)
}

func TestGridSizeSinglePrecision(t *testing.T) {
	// 21/5 is 4.19999981 in float32, so the row count falls just short of 210.
	tests := []struct {
		width, height, maxWidth, rows int
	}{
		{5, 21, 100, 209},
		{5, 42, 100, 419},
		{5, 47, 100, 469},
		{5, 20, 100, 200},
	}
	for _, tt := range tests {
		cols, rows := AsciiConfig{MaxWidth: tt.maxWidth}.GridSize(tt.width, tt.height)
		assert.Equal(t, tt.maxWidth, cols)
		assert.Equal(t, tt.rows, rows, "%dx%d at %d columns", tt.width, tt.height, tt.maxWidth)
	}
}

func TestRenderASCIILayout(t *testing.T) {
	img := images.New(240, 120)
	for y := 0; y < 120; y++ {
		for x := 0; x < 240; x++ {
			v := uint8(x * 255 / 239)
			img.Set(x, y, v, v, v)
		}
	}

	for _, cfg := range []AsciiConfig{
		DefaultAsciiConfig(),
		{MaxWidth: 60, ContrastBoost: 1, Detailed: true},
		{MaxWidth: 60, ContrastBoost: 1, Invert: true, Dither: true},
	} {
		text, err := RenderASCII(img, cfg, nil)
		require.NoError(t, err)
		cols, rows := cfg.GridSize(240, 120)
		lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
		require.Len(t, lines, rows)
		for _, line := range lines {
			assert.Equal(t, cols, utf8.RuneCountInString(line))
		}
	}
}

func TestRenderASCIIGradientDirection(t *testing.T) {
	img := images.New(100, 40)
	for x := 50; x < 100; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, 255, 255, 255)
		}
	}
	cfg := AsciiConfig{MaxWidth: 20, ContrastBoost: 1}
	art, err := RenderASCIIArt(img, cfg, nil)
	require.NoError(t, err)
	ramp := cfg.Ramp()
	assert.Equal(t, 0, art.Indices[0], "black maps to the darkest glyph")
	assert.Equal(t, len(ramp)-1, art.Indices[art.Width-1], "white maps to the lightest glyph")

	cfg.Invert = true
	inv, err := RenderASCIIArt(img, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, len(ramp)-1, inv.Indices[0])
	assert.Equal(t, 0, inv.Indices[inv.Width-1])
}

func TestRenderASCIIErrors(t *testing.T) {
	_, err := RenderASCII(images.New(4, 4), AsciiConfig{MaxWidth: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = RenderASCII(images.New(0, 0), DefaultAsciiConfig(), nil)
	assert.ErrorIs(t, err, images.ErrInvalidImage)

	_, err = RenderASCII(&images.Image{Width: 3, Height: 3}, DefaultAsciiConfig(), nil)
	assert.ErrorIs(t, err, images.ErrInvalidImage)
}

func TestRenderASCIIImage(t *testing.T) {
	art := &kernels.ASCIIArt{Width: 2, Height: 2, Text: "@ \n #\n"}
	img := RenderASCIIImage(art)
	require.NoError(t, img.Validate())
	assert.Equal(t, 2*GlyphWidth, img.Width)
	assert.Equal(t, 2*GlyphHeight, img.Height)

	inked := func(cx, cy int) int {
		n := 0
		for y := cy * GlyphHeight; y < (cy+1)*GlyphHeight; y++ {
			for x := cx * GlyphWidth; x < (cx+1)*GlyphWidth; x++ {
				if r, _, _ := img.At(x, y); r < 128 {
					n++
				}
			}
		}
		return n
	}
	assert.Positive(t, inked(0, 0), "@ cell has ink")
	assert.Zero(t, inked(1, 0), "space cell stays white")
	assert.Zero(t, inked(0, 1))
	assert.Positive(t, inked(1, 1), "# cell has ink")
}

func TestRenderASCIIImageFromRender(t *testing.T) {
	cfg := DefaultAsciiConfig()
	cfg.MaxWidth = 12
	art, err := RenderASCIIArt(randomImage(40, 40, 3), cfg, nil)
	require.NoError(t, err)

	img := RenderASCIIImage(art)
	assert.Equal(t, art.Width*GlyphWidth, img.Width)
	assert.Equal(t, art.Height*GlyphHeight, img.Height)
}
