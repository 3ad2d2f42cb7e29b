package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestImage() *Image {
	// A simple 100x100 red image.
	img := New(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, 255, 0, 0)
		}
	}
	return img
}

// TestResize validates dimensions and color preservation for Resize.
func TestResize(t *testing.T) {
	out := Resize(getTestImage(), 50, 25)
	require.NoError(t, out.Validate())
	assert.Equal(t, 50, out.Width, "width should match target")
	assert.Equal(t, 25, out.Height, "height should match target")

	r, g, b := out.At(25, 12)
	assert.InDelta(t, 255, int(r), 1, "a flat red image stays red")
	assert.InDelta(t, 0, int(g), 1)
	assert.InDelta(t, 0, int(b), 1)
}

func TestResizeUpscale(t *testing.T) {
	out := Resize(getTestImage(), 300, 120)
	assert.Equal(t, 300, out.Width)
	assert.Equal(t, 120, out.Height)
}

func TestResizeSameSizeIsCopy(t *testing.T) {
	src := getTestImage()
	out := Resize(src, 100, 100)
	assert.True(t, out.Equal(src))
	out.Data[0] = 1
	assert.Equal(t, uint8(255), src.Data[0], "resize must not alias its input")
}

func TestResizeDegenerate(t *testing.T) {
	out := Resize(getTestImage(), 0, -4)
	assert.Equal(t, 1, out.Width)
	assert.Equal(t, 1, out.Height)

	empty := Resize(New(0, 0), 4, 3)
	assert.True(t, empty.Equal(New(4, 3)))
}
