// Package images - Pixel buffer definitions shared by every filter.
package images

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/pkg/errors"
)

// Channels is the number of interleaved channels in an Image (R, G, B).
const Channels = 3

// ErrInvalidImage is returned when a buffer does not match its stated dimensions.
var ErrInvalidImage = errors.New("invalid image buffer")

// Image is a flat, row-major RGB raster with interleaved channels.
//
// Each transform allocates a fresh Image for its output and never writes into
// the Image it was given.
type Image struct {
	// The width of the image in pixels.
	Width int `json:"width" yaml:"width"`
	// The height of the image in pixels.
	Height int `json:"height" yaml:"height"`
	// The pixel data, Width*Height*Channels bytes.
	Data []byte `json:"data" yaml:"data"`
}

// New allocates a zeroed (black) image of the given dimensions.
//
// Arguments:
// - width: The width in pixels.
// - height: The height in pixels.
//
// Returns:
// - A new black image. Negative dimensions are treated as zero.
//
// @example
// img := New(640, 480)
func New(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		Width:  width,
		Height: height,
		Data:   make([]byte, width*height*Channels),
	}
}

// Validate checks the buffer invariant len(Data) == Width*Height*Channels.
//
// Returns:
// - ErrInvalidImage (wrapped with the offending sizes) if the invariant does not hold.
func (img *Image) Validate() error {
	if img == nil {
		return errors.Wrap(ErrInvalidImage, "image is nil")
	}
	if img.Width < 0 || img.Height < 0 {
		return errors.Wrapf(ErrInvalidImage, "negative dimensions %dx%d", img.Width, img.Height)
	}
	if want := img.Width * img.Height * Channels; len(img.Data) != want {
		return errors.Wrapf(ErrInvalidImage, "%dx%d image needs %d bytes, got %d",
			img.Width, img.Height, want, len(img.Data))
	}
	return nil
}

// Stride returns the number of bytes in one row.
func (img *Image) Stride() int {
	return img.Width * Channels
}

// Offset returns the index of the first channel of pixel (x, y).
func (img *Image) Offset(x, y int) int {
	return (y*img.Width + x) * Channels
}

// At returns the RGB triple at (x, y).
func (img *Image) At(x, y int) (r, g, b uint8) {
	i := img.Offset(x, y)
	p := img.Data[i : i+Channels : i+Channels]
	return p[0], p[1], p[2]
}

// Set writes the RGB triple at (x, y).
func (img *Image) Set(x, y int, r, g, b uint8) {
	i := img.Offset(x, y)
	p := img.Data[i : i+Channels : i+Channels]
	p[0], p[1], p[2] = r, g, b
}

// Row returns the capacity-capped slice for row y.
func (img *Image) Row(y int) []byte {
	s := img.Stride()
	return img.Data[y*s : (y+1)*s : (y+1)*s]
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	out := &Image{Width: img.Width, Height: img.Height, Data: make([]byte, len(img.Data))}
	copy(out.Data, img.Data)
	return out
}

// Equal reports whether two images have identical dimensions and bytes.
func (img *Image) Equal(other *Image) bool {
	if img == nil || other == nil {
		return img == other
	}
	return img.Width == other.Width && img.Height == other.Height && bytes.Equal(img.Data, other.Data)
}

// FromImage converts any image.Image into an RGB buffer, dropping alpha.
// Non-zero bounds are normalized so the result always starts at (0, 0).
//
// Arguments:
// - src: The decoded image.
//
// Returns:
// - A new RGB buffer holding the same pixels.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, src, b.Min, draw.Src)

	out := New(b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		srcRow := rgba.Pix[y*rgba.Stride:]
		dstRow := out.Row(y)
		for x := 0; x < out.Width; x++ {
			dstRow[x*3+0] = srcRow[x*4+0]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}
	return out
}

// ToRGBA converts the buffer into an opaque *image.RGBA for encoding or display.
func (img *Image) ToRGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		srcRow := img.Row(y)
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < img.Width; x++ {
			dstRow[x*4+0] = srcRow[x*3+0]
			dstRow[x*4+1] = srcRow[x*3+1]
			dstRow[x*4+2] = srcRow[x*3+2]
			dstRow[x*4+3] = 0xff
		}
	}
	return dst
}
