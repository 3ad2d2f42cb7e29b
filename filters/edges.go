package filters

import (
	"github.com/chewxy/math32"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

var (
	sobelX = [3][3]float32{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float32{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// edgeDetection writes the Sobel gradient magnitude of the luma plane as gray.
// Border pixels stay black.
func edgeDetection(img *images.Image, _ Params, opt kernels.Options) (*images.Image, error) {
	gray := images.ToGray(img)
	w, h := img.Width, img.Height
	out := images.New(w, h)
	eachRow(out, opt, func(y int, row []byte) {
		if y == 0 || y == h-1 {
			return
		}
		for x := 1; x < w-1; x++ {
			var gx, gy float32
			for i := 0; i < 3; i++ {
				line := gray.Pix[(y+i-1)*w:]
				for j := 0; j < 3; j++ {
					v := float32(line[x+j-1])
					gx += v * sobelX[i][j]
					gy += v * sobelY[i][j]
				}
			}
			m := clampByte(math32.Sqrt(gx*gx + gy*gy))
			row[x*3], row[x*3+1], row[x*3+2] = m, m, m
		}
	})
	return out, nil
}
