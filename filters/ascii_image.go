package filters

import (
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

// Cell size of basicfont.Face7x13.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// RenderASCIIImage draws ASCII art as black glyphs on a white canvas, one
// GlyphWidth x GlyphHeight cell per character, so dense glyphs read as dark.
//
// Arguments:
// - art: The art returned by RenderASCIIArt or kernels.Dither.
//
// Returns:
// - An image of art.Width*GlyphWidth by art.Height*GlyphHeight pixels.
//
// @example
// art, _ := filters.RenderASCIIArt(img, filters.DefaultAsciiConfig(), nil)
// preview := filters.RenderASCIIImage(art)
func RenderASCIIImage(art *kernels.ASCIIArt) *images.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, art.Width*GlyphWidth, art.Height*GlyphHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: canvas, Src: image.Black, Face: basicfont.Face7x13}
	for y, line := range strings.Split(strings.TrimSuffix(art.Text, "\n"), "\n") {
		// Face7x13 has a descent of 2 below the baseline.
		d.Dot = fixed.P(0, y*GlyphHeight+GlyphHeight-2)
		d.DrawString(line)
	}
	return images.FromImage(canvas)
}
