package filters

import (
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// Character ramps, darkest glyph first.
const (
	RampSimple   = "@%#*+=-:. "
	RampDetailed = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. "
)

// charAspect compensates for terminal cells being about twice as tall as wide.
const charAspect = 0.5

// AsciiConfig controls ASCII rendering.
type AsciiConfig struct {
	MaxWidth      int     `json:"maxWidth" yaml:"maxWidth"`
	ContrastBoost float32 `json:"contrastBoost" yaml:"contrastBoost"`
	Invert        bool    `json:"invert" yaml:"invert"`
	Detailed      bool    `json:"detailed" yaml:"detailed"`
	Dither        bool    `json:"dither" yaml:"dither"`
}

// DefaultAsciiConfig returns 120 columns, 1.2 contrast, simple ramp, dithering on.
func DefaultAsciiConfig() AsciiConfig {
	return AsciiConfig{
		MaxWidth:      120,
		ContrastBoost: 1.2,
		Dither:        true,
	}
}

// Ramp returns the glyph ramp selected by the config.
func (c AsciiConfig) Ramp() []rune {
	if c.Detailed {
		return []rune(RampDetailed)
	}
	return []rune(RampSimple)
}

// GridSize returns the character grid for an image of the given size:
// MaxWidth columns and floor(MaxWidth * height/width * 0.5) rows, at least 1.
func (c AsciiConfig) GridSize(width, height int) (cols, rows int) {
	cols = c.MaxWidth
	aspect := float32(height) / float32(width)
	rows = max(int(float32(cols)*aspect*charAspect), 1)
	return cols, rows
}

// RenderASCIIArt resizes img to the character grid, converts it to luma and
// maps every cell onto the configured ramp.
//
// Arguments:
// - img: The source image.
// - cfg: Grid width, ramp and tone settings.
// - rep: Optional progress observer.
//
// Returns:
// - The ASCII art with its per-cell ramp indices.
// - ErrInvalidParam for MaxWidth < 1, ErrInvalidImage for an invalid or empty image.
func RenderASCIIArt(img *images.Image, cfg AsciiConfig, rep kernels.Reporter) (*kernels.ASCIIArt, error) {
	if cfg.MaxWidth < 1 {
		return nil, errors.Wrapf(ErrInvalidParam, "ascii: max width %d", cfg.MaxWidth)
	}
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(err, "ascii")
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, errors.Wrap(images.ErrInvalidImage, "ascii: empty image")
	}

	cols, rows := cfg.GridSize(img.Width, img.Height)
	images.Logger().Debug("ascii render", "cols", cols, "rows", rows, "detailed", cfg.Detailed, "dither", cfg.Dither)

	gray := images.ToGray(images.Resize(img, cols, rows))
	return kernels.Dither(gray, cfg.Ramp(), kernels.DitherOptions{
		ContrastBoost: cfg.ContrastBoost,
		Invert:        cfg.Invert,
		Dither:        cfg.Dither,
	}, rep)
}

// RenderASCII is RenderASCIIArt returning only the text.
//
// @example
// text, err := filters.RenderASCII(img, filters.DefaultAsciiConfig(), nil)
func RenderASCII(img *images.Image, cfg AsciiConfig, rep kernels.Reporter) (string, error) {
	art, err := RenderASCIIArt(img, cfg, rep)
	if err != nil {
		return "", err
	}
	return art.Text, nil
}
