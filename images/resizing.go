package images

import (
	"github.com/nfnt/resize"
)

// Resize scales an image to exactly width x height with Lanczos3 resampling.
//
// Arguments:
// - img: The source image.
// - width: Target width; values below 1 become 1.
// - height: Target height; values below 1 become 1.
//
// Returns:
// - A new image of the requested size.
//
// @example
// small := Resize(img, 120, 40)
func Resize(img *Image, width, height int) *Image {
	width = max(width, 1)
	height = max(height, 1)
	if img.Width == 0 || img.Height == 0 {
		return New(width, height)
	}
	if img.Width == width && img.Height == height {
		return img.Clone()
	}
	scaled := resize.Resize(uint(width), uint(height), img.ToRGBA(), resize.Lanczos3)
	return FromImage(scaled)
}
