package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/config"
	"github.com/ironsheep/fezrs/internal/server"
	"github.com/ironsheep/fezrs/internal/tools"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "version":
		fmt.Printf("fezrs %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		fmt.Printf("  Band decoder: %s\n", bands.Backend)
		return
	case "--help", "-h", "help":
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "config":
		err = runConfig(os.Args[2:])
	default:
		err = runTool(os.Args[1], os.Args[2:])
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		logrus.WithError(err).Fatal("fezrs failed")
	}
}

func usage() {
	fmt.Println("fezrs - remote sensing calculators")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fezrs <tool> [flags]      Run one tool and export a PNG figure")
	fmt.Println("  fezrs serve [flags]       Serve the tools over MCP on stdin/stdout")
	fmt.Println("  fezrs config [-o file]    Write the default configuration")
	fmt.Println("  fezrs --version           Print version information")
	fmt.Println()
	fmt.Println("Tools:")
	for _, name := range tools.Names() {
		info, _ := tools.Lookup(name)
		fmt.Printf("  %-14s %s\n", strings.ToLower(name), info.Description)
	}
	fmt.Println()
	fmt.Println("Run 'fezrs <tool> -h' for the flags of a tool.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  FEZRS_LOG_LEVEL=debug    Set the log level")
}

// setupLogging sends logs to stderr. The level comes from the config, then
// FEZRS_LOG_LEVEL, then -v.
func setupLogging(cfg *config.Config, verbose bool) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if env := os.Getenv("FEZRS_LOG_LEVEL"); env != "" {
		cfg.Log.Level = env
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	out := fs.String("out", "", "default output directory")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.Output = *out
	}
	if err := setupLogging(cfg, *verbose); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
		"backend": bands.Backend,
	}).Debug("starting MCP server")

	srv := server.New(
		server.WithLogger(logrus.StandardLogger()),
		server.WithOutputDir(cfg.Output),
		server.WithParams(cfg.Params()),
	)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	out := fs.String("o", "fezrs.yaml", "file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := config.SaveConfig(config.DefaultConfig(), *out); err != nil {
		return err
	}
	fmt.Println(*out)
	return nil
}

// toolFlags holds the flags of a tool run. Only flags given on the command
// line override the config.
type toolFlags struct {
	fs      *flag.FlagSet
	config  string
	out     string
	verbose bool
	bands   map[bands.Name]*string

	title    string
	figsize  string
	showAxis bool
	colormap string
	colorbar bool
	prefix   string
	dpi      int
	bbox     string
	grid     bool

	ksizeX, ksizeY int
	sigmaX, sigmaY float64
	clusters       int
}

func newToolFlags(name string) *toolFlags {
	f := &toolFlags{
		fs:    flag.NewFlagSet(strings.ToLower(name), flag.ContinueOnError),
		bands: map[bands.Name]*string{},
	}
	f.fs.StringVar(&f.config, "config", "", "YAML configuration file")
	f.fs.StringVar(&f.out, "out", "", "output directory (default from config, else \"output\")")
	f.fs.BoolVar(&f.verbose, "v", false, "debug logging")
	for _, n := range bands.All() {
		f.bands[n] = f.fs.String(string(n), "", "path to the "+string(n)+" band")
	}

	f.fs.StringVar(&f.title, "title", "", "figure title")
	f.fs.StringVar(&f.figsize, "figsize", "", "figure size in inches as W,H")
	f.fs.BoolVar(&f.showAxis, "show-axis", false, "draw axes with pixel ticks")
	f.fs.StringVar(&f.colormap, "colormap", "", "colormap for single-band output")
	f.fs.BoolVar(&f.colorbar, "colorbar", false, "draw a colorbar")
	f.fs.StringVar(&f.prefix, "prefix", "", "output file name prefix")
	f.fs.IntVar(&f.dpi, "dpi", 0, "pixels per inch")
	f.fs.StringVar(&f.bbox, "bbox", "", "standard or tight")
	f.fs.BoolVar(&f.grid, "grid", false, "draw grid lines")

	switch strings.ToUpper(name) {
	case "GAUSSIAN":
		f.fs.IntVar(&f.ksizeX, "ksize-x", 0, "kernel width (odd)")
		f.fs.IntVar(&f.ksizeY, "ksize-y", 0, "kernel height (odd)")
		f.fs.Float64Var(&f.sigmaX, "sigma-x", 0, "standard deviation along X, 0 derives it from the kernel")
		f.fs.Float64Var(&f.sigmaY, "sigma-y", 0, "standard deviation along Y (default sigma-x)")
	case "KMEANS":
		f.fs.IntVar(&f.clusters, "k", 0, "number of clusters")
	}
	return f
}

// apply copies every flag set on the command line into cfg.
func (f *toolFlags) apply(cfg *config.Config) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "out":
			cfg.Output = f.out
		case "title":
			cfg.Export.Title = f.title
		case "figsize":
			cfg.Export.FigSize, err = parseFigSize(f.figsize)
		case "show-axis":
			cfg.Export.ShowAxis = &f.showAxis
		case "colormap":
			cfg.Export.Colormap = f.colormap
		case "colorbar":
			cfg.Export.ShowColorbar = &f.colorbar
		case "prefix":
			cfg.Export.FilenamePrefix = f.prefix
		case "dpi":
			cfg.Export.DPI = f.dpi
		case "bbox":
			cfg.Export.BBox = f.bbox
		case "grid":
			cfg.Export.Grid = &f.grid
		case "ksize-x":
			cfg.Gaussian.KSizeX = f.ksizeX
		case "ksize-y":
			cfg.Gaussian.KSizeY = f.ksizeY
		case "sigma-x":
			cfg.Gaussian.SigmaX = f.sigmaX
		case "sigma-y":
			cfg.Gaussian.SigmaY = &f.sigmaY
		case "k":
			cfg.KMeans.Clusters = f.clusters
		default:
			if n, perr := bands.ParseName(fl.Name); perr == nil {
				cfg.Bands[string(n)] = *f.bands[n]
			}
		}
	})
	return err
}

func parseFigSize(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("figsize %q: want W,H", s)
	}
	size := make([]float64, 2)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("figsize %q: %w", s, err)
		}
		size[i] = v
	}
	return size, nil
}

func runTool(name string, args []string) error {
	if _, err := tools.Lookup(name); err != nil {
		usage()
		return err
	}

	f := newToolFlags(name)
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	if err := f.apply(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := setupLogging(cfg, f.verbose); err != nil {
		return err
	}

	paths, err := cfg.Paths()
	if err != nil {
		return err
	}
	t, err := tools.New(name, paths, cfg.Params())
	if err != nil {
		return err
	}

	opts := cfg.Export.Apply(t.DefaultOptions())
	path, err := tools.NewRunner(logrus.StandardLogger()).Execute(t, cfg.Output, opts)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
