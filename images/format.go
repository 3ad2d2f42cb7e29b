package images

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageFormat represents supported image formats
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatWebP ImageFormat = "webp"
	FormatPNG  ImageFormat = "png"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
	FormatPPM  ImageFormat = "ppm"
)

// ErrUnsupportedFormat is returned for extensions and format names the codec does not know.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// JPEGQuality and WebPQuality are the encoder settings used by Encode.
const (
	JPEGQuality = 92
	WebPQuality = 90
)

var extensions = map[string]ImageFormat{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".webp": FormatWebP,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".ppm":  FormatPPM,
}

func init() {
	image.RegisterFormat("ppm", "P6", decodePPM, decodePPMConfig)
}

// FormatFromPath infers the image format from a file extension.
//
// Arguments:
// - path: A file path such as "out.png".
//
// Returns:
// - The matching ImageFormat.
// - ErrUnsupportedFormat if the extension is unknown.
func FormatFromPath(path string) (ImageFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
}

// IsSupportedPath reports whether FormatFromPath would accept the path.
func IsSupportedPath(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode reads any registered format into an RGB buffer.
//
// Returns:
// - The decoded image.
// - The detected format name.
// - error if decoding fails.
func Decode(r io.Reader) (*Image, ImageFormat, error) {
	src, name, err := image.Decode(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to decode image")
	}
	return FromImage(src), ImageFormat(name), nil
}

// Encode writes img in the requested format.
//
// Arguments:
// - w: The destination writer.
// - img: The image to encode.
// - format: The target format.
//
// Returns:
// - error if the image is invalid, the format unknown, or the encoder fails.
func Encode(w io.Writer, img *Image, format ImageFormat) error {
	if err := img.Validate(); err != nil {
		return err
	}

	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, img.ToRGBA(), &jpeg.Options{Quality: JPEGQuality})
	case FormatPNG:
		err = png.Encode(w, img.ToRGBA())
	case FormatWebP:
		err = webp.Encode(w, img.ToRGBA(), &webp.Options{Quality: WebPQuality})
	case FormatBMP:
		err = bmp.Encode(w, img.ToRGBA())
	case FormatTIFF:
		err = tiff.Encode(w, img.ToRGBA(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatPPM:
		err = encodePPM(w, img)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}
	return errors.Wrapf(err, "failed to encode %s", format)
}

// encodePPM writes the binary P6 variant with maxval 255.
func encodePPM(w io.Writer, img *Image) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(img.Data)
	return err
}

// maxPPMPixels bounds the raster a PPM header may declare before any buffer
// is allocated for it.
const maxPPMPixels = 1 << 26

func readPPMHeader(br *bufio.Reader) (width, height int, err error) {
	var magic string
	var maxval int
	if _, err = fmt.Fscan(br, &magic, &width, &height, &maxval); err != nil {
		return 0, 0, errors.Wrap(err, "malformed ppm header")
	}
	if magic != "P6" || maxval != 255 || width < 0 || height < 0 {
		return 0, 0, errors.Errorf("unsupported ppm header %s %dx%d maxval=%d", magic, width, height, maxval)
	}
	if width > 0 && height > maxPPMPixels/width {
		return 0, 0, errors.Errorf("ppm dimensions %dx%d too large", width, height)
	}
	// Exactly one whitespace byte separates the header from the raster.
	if _, err = br.ReadByte(); err != nil {
		return 0, 0, errors.Wrap(err, "truncated ppm header")
	}
	return width, height, nil
}

func decodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	width, height, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}
	buf := New(width, height)
	if _, err := io.ReadFull(br, buf.Data); err != nil {
		return nil, errors.Wrap(err, "truncated ppm raster")
	}
	return buf.ToRGBA(), nil
}

func decodePPMConfig(r io.Reader) (image.Config, error) {
	width, height, err := readPPMHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{Width: width, Height: height, ColorModel: color.RGBAModel}, nil
}
