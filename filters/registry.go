// Package filters - Named image effects built on the kernels package, with
// parameter ranges validated in one place.
package filters

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

var (
	// ErrUnknownFilter is returned for a filter name that is not registered.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrInvalidParam is returned for a missing, malformed or out-of-range parameter.
	ErrInvalidParam = errors.New("invalid filter parameter")
)

// Category groups filters for listing.
type Category string

const (
	CategoryBasic       Category = "basic"
	CategoryEnhancement Category = "enhancement"
	CategoryColor       Category = "color"
	CategoryGeometric   Category = "geometric"
	CategoryArtistic    Category = "artistic"
	CategoryUtility     Category = "utility"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryBasic, CategoryEnhancement, CategoryColor, CategoryGeometric, CategoryArtistic, CategoryUtility,
}

// ParamKind tells whether a parameter accepts fractional values.
type ParamKind int

const (
	Integer ParamKind = iota
	Float
)

// String returns "int" or "float".
func (k ParamKind) String() string {
	if k == Float {
		return "float"
	}
	return "int"
}

// MarshalText lets the catalog print kinds by name.
func (k ParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParamSpec describes one filter parameter and its accepted range.
type ParamSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Kind        ParamKind `json:"kind" yaml:"kind"`
	Min         float64   `json:"min" yaml:"min"`
	Max         float64   `json:"max" yaml:"max"`
	Default     float64   `json:"default" yaml:"default"`
	Description string    `json:"description" yaml:"description"`
}

// Params maps parameter names to values.
type Params map[string]float64

// Int returns the named parameter as an int.
func (p Params) Int(name string) int { return int(p[name]) }

// Float32 returns the named parameter as a float32.
func (p Params) Float32(name string) float32 { return float32(p[name]) }

// runFunc executes one filter over already-resolved parameters.
type runFunc func(img *images.Image, p Params, opt kernels.Options) (*images.Image, error)

// FilterSpec describes a registered filter.
type FilterSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Category    Category    `json:"category" yaml:"category"`
	Params      []ParamSpec `json:"params" yaml:"params"`

	run runFunc
}

var (
	registry = map[string]*FilterSpec{}
	ordered  []*FilterSpec
)

// register adds a filter; duplicate names are a programming error.
func register(spec *FilterSpec) {
	if _, dup := registry[spec.Name]; dup {
		panic("filters: duplicate registration of " + spec.Name)
	}
	registry[spec.Name] = spec
	ordered = append(ordered, spec)
}

// Names returns every registered filter name, sorted.
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// Specs returns every registered filter in registration order.
func Specs() []*FilterSpec {
	return slices.Clone(ordered)
}

// ByCategory returns the filters of one category in registration order.
func ByCategory(c Category) []*FilterSpec {
	return lo.Filter(ordered, func(s *FilterSpec, _ int) bool { return s.Category == c })
}

// Lookup returns the filter registered under name.
func Lookup(name string) (*FilterSpec, error) {
	spec, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFilter, "%q", name)
	}
	return spec, nil
}

// Resolve fills in defaults and validates every value against its range.
//
// Arguments:
// - p: The caller's parameters; may be nil.
//
// Returns:
// - A new Params holding a value for every declared parameter.
// - ErrInvalidParam for an undeclared name, a value outside its range, a
// fractional value for an integer parameter, or a non-finite value.
func (s *FilterSpec) Resolve(p Params) (Params, error) {
	out := make(Params, len(s.Params))
	for name := range p {
		if !slices.ContainsFunc(s.Params, func(ps ParamSpec) bool { return ps.Name == name }) {
			return nil, errors.Wrapf(ErrInvalidParam, "%s: no parameter %q", s.Name, name)
		}
	}
	for _, ps := range s.Params {
		v, ok := p[ps.Name]
		if !ok {
			out[ps.Name] = ps.Default
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrInvalidParam, "%s: %s must be finite", s.Name, ps.Name)
		}
		if ps.Kind == Integer && v != math.Trunc(v) {
			return nil, errors.Wrapf(ErrInvalidParam, "%s: %s must be an integer, got %v", s.Name, ps.Name, v)
		}
		if v < ps.Min || v > ps.Max {
			return nil, errors.Wrapf(ErrInvalidParam, "%s: %s must be between %v and %v, got %v",
				s.Name, ps.Name, ps.Min, ps.Max, v)
		}
		out[ps.Name] = v
	}
	return out, nil
}

// ParseParams turns "name=value" pairs into Params.
//
// @example
// p, err := ParseParams([]string{"radius=4", "levels=20"})
func ParseParams(pairs []string) (Params, error) {
	p := make(Params, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Wrapf(ErrInvalidParam, "expected name=value, got %q", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParam, "%s: %v", name, err)
		}
		p[name] = v
	}
	return p, nil
}

// Apply runs the named filter with parallel row processing.
//
// Arguments:
// - name: A registered filter name, see Names.
// - img: The source image. It is never modified.
// - params: Parameter overrides; missing parameters take their defaults.
// - rep: Optional progress observer.
//
// Returns:
// - A new image, or ErrUnknownFilter / ErrInvalidParam / ErrInvalidImage
// before any pixel is touched.
//
// @example
// out, err := filters.Apply("oil", img, filters.Params{"radius": 4}, nil)
func Apply(name string, img *images.Image, params Params, rep kernels.Reporter) (*images.Image, error) {
	return ApplyWithOptions(name, img, params, kernels.Options{Parallel: true, Progress: rep})
}

// ApplyWithOptions is Apply with explicit worker, pool and progress settings.
func ApplyWithOptions(name string, img *images.Image, params Params, opt kernels.Options) (*images.Image, error) {
	spec, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	resolved, err := spec.Resolve(params)
	if err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	images.Logger().Debug("apply filter", "filter", name, "params", resolved,
		"width", img.Width, "height", img.Height)
	return spec.run(img, resolved, opt)
}
