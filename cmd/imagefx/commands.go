package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/nvr-ai/go-imagefx/filters"
	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
	"github.com/nvr-ai/go-imagefx/util"
)

func (a *app) listCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List filters by category with their parameter ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if asYAML {
				data, err := yaml.Marshal(filters.Specs())
				if err != nil {
					return errors.Wrap(err, "failed to marshal filters")
				}
				_, err = out.Write(data)
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, c := range filters.Categories {
				fmt.Fprintf(tw, "%s:\n", c)
				for _, s := range filters.ByCategory(c) {
					params := lo.Map(s.Params, func(p filters.ParamSpec, _ int) string {
						return fmt.Sprintf("%s=%v [%v..%v]", p.Name, p.Default, p.Min, p.Max)
					})
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.Name, s.Description, strings.Join(params, " "))
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the catalog as YAML")
	return cmd
}

// filterParams parses -p flags and fills in configured defaults.
func (a *app) filterParams(name string, pairs []string) (filters.Params, error) {
	spec, err := filters.Lookup(name)
	if err != nil {
		return nil, err
	}
	params, err := filters.ParseParams(pairs)
	if err != nil {
		return nil, err
	}
	if _, ok := params["seed"]; !ok && name == "noise" {
		params["seed"] = float64(a.cfg.NoiseSeed)
	}
	// Resolve here so bad parameters fail before any file is read.
	if _, err := spec.Resolve(params); err != nil {
		return nil, err
	}
	return params, nil
}

func (a *app) applyCmd() *cobra.Command {
	var (
		pairs []string
		size  string
	)
	cmd := &cobra.Command{
		Use:   "apply <filter> <input> <output>",
		Short: "Apply one filter to an image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, in, out := args[0], args[1], args[2]
			params, err := a.filterParams(name, pairs)
			if err != nil {
				return err
			}
			img, _, err := readImage(in)
			if err != nil {
				return err
			}
			if size != "" {
				res, err := images.ResolutionByAlias(size)
				if err != nil {
					return err
				}
				img = images.Resize(img, res.Width, res.Height)
			}

			start := time.Now()
			result, err := filters.ApplyWithOptions(name, img, params, a.options(cmd, name))
			if err != nil {
				return err
			}
			images.Logger().Info("applied filter", "filter", name, "input", in,
				"width", result.Width, "height", result.Height,
				"elapsed", time.Since(start), "checksum", images.ComputeChecksum(result))
			return writeImage(out, result)
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "filter parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&size, "size", "", "resize to a preset (e.g. 720p) before filtering")
	return cmd
}

func (a *app) asciiCmd() *cobra.Command {
	var (
		width    int
		contrast float32
		invert   bool
		detailed bool
		dither   bool
	)
	cmd := &cobra.Command{
		Use:   "ascii <input> [output]",
		Short: "Render an image as ASCII art",
		Long:  "Render an image as ASCII art to stdout, a text file, or an image file when output has an image extension.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Ascii
			flags := cmd.Flags()
			if flags.Changed("width") {
				cfg.MaxWidth = width
			}
			if flags.Changed("contrast") {
				cfg.ContrastBoost = contrast
			}
			if flags.Changed("invert") {
				cfg.Invert = invert
			}
			if flags.Changed("detailed") {
				cfg.Detailed = detailed
			}
			if flags.Changed("dither") {
				cfg.Dither = dither
			}

			img, _, err := readImage(args[0])
			if err != nil {
				return err
			}
			art, err := filters.RenderASCIIArt(img, cfg, a.reporter(cmd, "ascii"))
			if err != nil {
				return err
			}
			switch {
			case len(args) == 1:
				_, err = fmt.Fprint(cmd.OutOrStdout(), art.Text)
				return err
			case images.IsSupportedPath(args[1]):
				return writeImage(args[1], filters.RenderASCIIImage(art))
			default:
				return errors.Wrap(os.WriteFile(args[1], []byte(art.Text), 0o644), "failed to write ascii art")
			}
		},
	}
	f := cmd.Flags()
	f.IntVar(&width, "width", 0, "maximum columns")
	f.Float32Var(&contrast, "contrast", 1, "contrast boost around mid-gray")
	f.BoolVar(&invert, "invert", false, "reverse the glyph ramp")
	f.BoolVar(&detailed, "detailed", false, "use the 70-glyph ramp")
	f.BoolVar(&dither, "dither", false, "apply Floyd-Steinberg error diffusion")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		pairs []string
		ext   string
	)
	cmd := &cobra.Command{
		Use:   "batch <filter> <input-dir> <output-dir>",
		Short: "Apply one filter to every image in a directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, inDir, outDir := args[0], args[1], args[2]
			params, err := a.filterParams(name, pairs)
			if err != nil {
				return err
			}
			if ext != "" {
				ext = "." + strings.TrimPrefix(ext, ".")
				if _, err := images.FormatFromPath(ext); err != nil {
					return err
				}
			}
			files, err := util.LoadDirectoryImageFiles(inDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrap(err, "failed to create output directory")
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(lo.Ternary(a.cfg.Workers > 0, a.cfg.Workers, runtime.GOMAXPROCS(0)))
			for _, file := range files {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					img, _, err := images.Decode(bytes.NewReader(file.Data))
					if err != nil {
						return errors.Wrap(err, file.Path)
					}
					result, err := filters.ApplyWithOptions(name, img, params, a.cfg.KernelOptions(&a.pool, nil))
					if err != nil {
						return errors.Wrap(err, file.Path)
					}
					return writeImage(filepath.Join(outDir, outputName(file.Path, ext)), result)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			images.Logger().Info("batch complete", "filter", name, "files", len(files), "output", outDir)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "filter parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&ext, "ext", "", "output extension; defaults to each input's own")
	return cmd
}

// outputName keeps the input's base name, swapping the extension when ext is set.
func outputName(path, ext string) string {
	base := filepath.Base(path)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <input>",
		Short: "Print dimensions, checksum and channel statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, format, err := readImage(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s %dx%d\n", args[0], format, img.Width, img.Height)
			fmt.Fprintf(out, "checksum: %s\n", images.ComputeChecksum(img))
			if res, ok := images.LargestWithin(img.Width, img.Height); ok {
				fmt.Fprintf(out, "fits: %s\n", res)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "channel\tmean\tstddev\tmin\tmax")
			for i, s := range images.Stats(img) {
				fmt.Fprintf(tw, "%c\t%.2f\t%.2f\t%d\t%d\n", "RGB"[i], s.Mean, s.StdDev, s.Min, s.Max)
			}
			return tw.Flush()
		},
	}
}

func (a *app) benchCmd() *cobra.Command {
	var (
		pairs      []string
		iterations int
	)
	cmd := &cobra.Command{
		Use:   "bench <filter> <input>",
		Short: "Profile repeated runs of one filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			params, err := a.filterParams(name, pairs)
			if err != nil {
				return err
			}
			img, _, err := readImage(args[1])
			if err != nil {
				return err
			}
			opt := a.cfg.KernelOptions(&a.pool, nil)
			prof, err := kernels.ProfileOperation(name, iterations, func() error {
				_, err := filters.ApplyWithOptions(name, img, params, opt)
				return err
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), prof.FormatReport())
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&pairs, "param", "p", nil, "filter parameter as name=value (repeatable)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "number of runs")
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var size string
	cmd := &cobra.Command{
		Use:   "generate <output>",
		Short: "Write a red/green gradient test image",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			res, err := images.ResolutionByAlias(size)
			if err != nil {
				return err
			}
			return writeImage(args[0], gradient(res.Width, res.Height))
		},
	}
	cmd.Flags().StringVar(&size, "size", string(images.ResolutionAliasThumb), "preset size")
	return cmd
}

// gradient ramps red across x and green down y over a constant blue of 128.
func gradient(w, h int) *images.Image {
	img := images.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, uint8(x*255/max(w-1, 1)), uint8(y*255/max(h-1, 1)), 128)
		}
	}
	return img
}

func (a *app) resizeCmd() *cobra.Command {
	var (
		size          string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "resize <input> <output>",
		Short: "Resize an image to a preset or explicit size",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if size != "" {
				res, err := images.ResolutionByAlias(size)
				if err != nil {
					return err
				}
				width, height = res.Width, res.Height
			}
			if width < 1 || height < 1 {
				return errors.New("resize needs --size or positive --width and --height")
			}
			img, _, err := readImage(args[0])
			if err != nil {
				return err
			}
			return writeImage(args[1], images.Resize(img, width, height))
		},
	}
	f := cmd.Flags()
	f.StringVar(&size, "size", "", "preset size (e.g. 720p)")
	f.IntVar(&width, "width", 0, "target width")
	f.IntVar(&height, "height", 0, "target height")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				data, err := yaml.Marshal(a.cfg)
				if err != nil {
					return errors.Wrap(err, "failed to marshal config")
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "init <path>",
			Short: "Write the effective configuration as YAML",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.cfg.SaveConfig(args[0])
			},
		},
	)
	return cmd
}
