// Command imagefx applies windowed image filters and renders ASCII art.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nvr-ai/go-imagefx/config"
	"github.com/nvr-ai/go-imagefx/images"
	"github.com/nvr-ai/go-imagefx/images/kernels"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath   string
	logLevel     string
	workers      int
	parallel     bool
	showProgress bool

	cfg  *config.Config
	pool kernels.Pool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "imagefx",
		Short:         "Windowed image filters and ASCII art",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.IntVar(&a.workers, "workers", 0, "row-parallel workers, 0 for GOMAXPROCS")
	pf.BoolVar(&a.parallel, "parallel", true, "process rows in parallel")
	pf.BoolVar(&a.showProgress, "progress", false, "print progress to stderr")

	root.AddCommand(
		a.listCmd(),
		a.applyCmd(),
		a.asciiCmd(),
		a.batchCmd(),
		a.infoCmd(),
		a.benchCmd(),
		a.generateCmd(),
		a.resizeCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("parallel") {
		cfg.Parallel = a.parallel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	images.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl})))
	a.cfg = cfg
	return nil
}

// options builds kernel options for one filter call of the current command.
func (a *app) options(cmd *cobra.Command, label string) kernels.Options {
	return a.cfg.KernelOptions(&a.pool, a.reporter(cmd, label))
}

func (a *app) reporter(cmd *cobra.Command, label string) kernels.Reporter {
	if !a.showProgress {
		return nil
	}
	w := cmd.ErrOrStderr()
	return kernels.ReporterFunc(func(p float64) {
		fmt.Fprintf(w, "\r%s %3.0f%%", label, p*100)
		if p >= 1 {
			fmt.Fprintln(w)
		}
	})
}

func readImage(path string) (*images.Image, images.ImageFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open input")
	}
	defer f.Close()

	img, format, err := images.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", errors.Wrap(err, path)
	}
	return img, format, nil
}

func writeImage(path string, img *images.Image) (err error) {
	format, err := images.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "failed to close output")
		}
	}()

	w := bufio.NewWriter(f)
	if err := images.Encode(w, img, format); err != nil {
		return errors.Wrap(err, path)
	}
	return errors.Wrap(w.Flush(), "failed to flush output")
}
