package images

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// AspectRatio represents an aspect ratio by name (e.g., "16:9").
type AspectRatio string

// Defines the aspect ratios of the preset sizes.
const (
	AspectRatio169 AspectRatio = "16:9"
	AspectRatio43  AspectRatio = "4:3"
	AspectRatio54  AspectRatio = "5:4"
	AspectRatio11  AspectRatio = "1:1"
)

// ResolutionAlias is the short name a preset is selected by on the command line.
type ResolutionAlias string

const (
	ResolutionAliasThumb ResolutionAlias = "thumb"
	ResolutionAlias360p  ResolutionAlias = "360p"
	ResolutionAliasVGA   ResolutionAlias = "vga"
	ResolutionAlias480p  ResolutionAlias = "480p"
	ResolutionAlias720p  ResolutionAlias = "720p"
	ResolutionAlias1MP   ResolutionAlias = "1mp"
	ResolutionAlias1080p ResolutionAlias = "1080p"
	ResolutionAlias1440p ResolutionAlias = "1440p"
	ResolutionAlias4K    ResolutionAlias = "4k"
)

// ErrUnknownResolution is returned when an alias does not name a preset.
var ErrUnknownResolution = errors.New("unknown resolution")

// Resolution describes a named output size.
type Resolution struct {
	Alias       ResolutionAlias `json:"alias" yaml:"alias"`
	Name        string          `json:"name" yaml:"name"`
	AspectRatio AspectRatio     `json:"aspectRatio" yaml:"aspectRatio"`
	Width       int             `json:"width" yaml:"width"`
	Height      int             `json:"height" yaml:"height"`
}

// MegaPixels returns the pixel count in megapixels rounded to two decimal
// places (e.g., 2.07 for 1080p). Degenerate sizes report 0.
func (r Resolution) MegaPixels() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	mp := float64(r.Width*r.Height) / 1_000_000.0
	return math.Round(mp*100) / 100
}

// String returns a human-readable summary of the resolution.
func (r Resolution) String() string {
	return fmt.Sprintf("%s (%dx%d, %.2fMP)", r.Name, r.Width, r.Height, r.MegaPixels())
}

// Resolutions holds every preset keyed by alias.
var Resolutions = map[ResolutionAlias]Resolution{
	ResolutionAliasThumb: {Alias: ResolutionAliasThumb, Name: "Thumbnail", AspectRatio: AspectRatio11, Width: 256, Height: 256},
	ResolutionAlias360p:  {Alias: ResolutionAlias360p, Name: "nHD", AspectRatio: AspectRatio169, Width: 640, Height: 360},
	ResolutionAliasVGA:   {Alias: ResolutionAliasVGA, Name: "VGA", AspectRatio: AspectRatio43, Width: 640, Height: 480},
	ResolutionAlias480p:  {Alias: ResolutionAlias480p, Name: "FWVGA", AspectRatio: AspectRatio169, Width: 854, Height: 480},
	ResolutionAlias720p:  {Alias: ResolutionAlias720p, Name: "HD 720p", AspectRatio: AspectRatio169, Width: 1280, Height: 720},
	ResolutionAlias1MP:   {Alias: ResolutionAlias1MP, Name: "1MP (5:4)", AspectRatio: AspectRatio54, Width: 1280, Height: 1024},
	ResolutionAlias1080p: {Alias: ResolutionAlias1080p, Name: "Full HD 1080p", AspectRatio: AspectRatio169, Width: 1920, Height: 1080},
	ResolutionAlias1440p: {Alias: ResolutionAlias1440p, Name: "QHD 1440p", AspectRatio: AspectRatio169, Width: 2560, Height: 1440},
	ResolutionAlias4K:    {Alias: ResolutionAlias4K, Name: "4K UHD", AspectRatio: AspectRatio169, Width: 3840, Height: 2160},
}

// SortedResolutions returns every preset ordered by pixel count, then alias.
func SortedResolutions() []Resolution {
	all := lo.Values(Resolutions)
	slices.SortFunc(all, func(a, b Resolution) int {
		if d := a.Width*a.Height - b.Width*b.Height; d != 0 {
			return d
		}
		return strings.Compare(string(a.Alias), string(b.Alias))
	})
	return all
}

// ResolutionByAlias looks up a preset case-insensitively.
//
// Arguments:
// - alias: A preset alias such as "720p".
//
// Returns:
// - The preset.
// - ErrUnknownResolution if no preset has that alias.
//
// @example
// res, err := ResolutionByAlias("1080p")
func ResolutionByAlias(alias string) (Resolution, error) {
	res, ok := Resolutions[ResolutionAlias(strings.ToLower(strings.TrimSpace(alias)))]
	if !ok {
		return Resolution{}, errors.Wrapf(ErrUnknownResolution, "%q", alias)
	}
	return res, nil
}

// LargestWithin returns the preset with the most pixels that fits inside
// width x height.
//
// Arguments:
// - width: The maximum width.
// - height: The maximum height.
//
// Returns:
// - The largest fitting preset, and false if none fits.
func LargestWithin(width, height int) (Resolution, bool) {
	fitting := lo.Filter(SortedResolutions(), func(r Resolution, _ int) bool {
		return r.Width <= width && r.Height <= height
	})
	if len(fitting) == 0 {
		return Resolution{}, false
	}
	return fitting[len(fitting)-1], true
}
