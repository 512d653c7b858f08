package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/san-kum/goflex/internal/bindgen"
	"github.com/san-kum/goflex/internal/cgoemit"
	"github.com/san-kum/goflex/internal/config"
	"github.com/san-kum/goflex/internal/linkage"
	"github.com/san-kum/goflex/internal/pipeline"
	"github.com/san-kum/goflex/internal/report"
	"github.com/san-kum/goflex/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	verbose    bool
	// Target and feature overrides
	root     string
	goos     string
	goarch   string
	width    string
	features string
	profile  string
	// generate
	dryRun       bool
	skipBindings bool
	// output selection
	asJSON    bool
	asLDFlags bool
	output    string
	force     bool
)

// main registers the flexgen commands and exits with status 1 on any error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "flexgen",
		Short:         "NvFlex binding generator and linkage resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			pipeline.SetLogger(l)
			bindgen.SetLogger(l)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", config.DefaultFile, "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration (os/name)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&root, "root", "", "project root holding the FleX tree")
	pf.StringVar(&goos, "os", "", "target os (windows, linux, android)")
	pf.StringVar(&goarch, "arch", "", "target GOARCH")
	pf.StringVar(&width, "width", "", "target pointer width")
	pf.StringVar(&features, "features", "", "enabled features (d3d,cuda,ext)")
	pf.StringVar(&profile, "profile", "", "build profile (debug, release)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate bindings and the cgo link file",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the link file instead of writing")
	generateCmd.Flags().BoolVar(&skipBindings, "skip-bindings", false, "only emit the link file")

	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "show the linkage for the target",
		Args:  cobra.NoArgs,
		RunE:  runResolve,
	}
	resolveCmd.Flags().BoolVar(&asJSON, "json", false, "print as json")
	resolveCmd.Flags().BoolVar(&asLDFlags, "ldflags", false, "print linker flags only")

	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "write the translator manifest",
		Args:  cobra.NoArgs,
		RunE:  runManifest,
	}
	manifestCmd.Flags().StringVarP(&output, "output", "o", "", "manifest path, - for stdout")

	matrixCmd := &cobra.Command{
		Use:   "matrix",
		Short: "resolve every platform and feature combination",
		Args:  cobra.NoArgs,
		RunE:  runMatrix,
	}
	matrixCmd.Flags().BoolVar(&asJSON, "json", false, "print as json")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive linkage explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			lc, err := cfg.LinkConfig(lookup())
			if err != nil {
				return err
			}
			return viz.RunExplorer(lc)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [os]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			oses := []string{"windows", "linux", "android"}
			if len(args) == 1 {
				oses = args
			}
			for _, o := range oses {
				names := config.ListPresets(o)
				if len(names) == 0 {
					fmt.Printf("no presets for os: %s\n", o)
					continue
				}
				fmt.Printf("presets for %s:\n", o)
				for _, n := range names {
					fmt.Printf("  %s/%s\n", o, n)
				}
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write a default config file",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(generateCmd, resolveCmd, manifestCmd, matrixCmd, exploreCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flexgen:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// loadConfig picks the preset, the config file or the defaults, then applies
// command line overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		o, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be os/name, got %q", preset)
		}
		cfg = config.GetPreset(o, name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(o))
		}
	default:
		loaded, err := config.Load(configFile)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist) && configFile == config.DefaultFile:
			cfg = config.DefaultConfig()
		default:
			return nil, err
		}
	}
	return cfg, applyFlags(cfg)
}

func applyFlags(cfg *config.Config) error {
	if root != "" {
		cfg.Root = root
	}
	if goos != "" {
		cfg.Target.OS = goos
	}
	if goarch != "" {
		cfg.Target.Arch = goarch
	}
	if width != "" {
		cfg.Target.PointerWidth = width
	}
	if features != "" {
		f, err := linkage.ParseFeatures(features)
		if err != nil {
			return err
		}
		cfg.Features = f
	}
	if profile != "" {
		cfg.Profile = profile
	}
	return nil
}

// lookup reads the environment but hides variables overridden on the command line.
func lookup() linkage.LookupFunc {
	hidden := map[string]bool{
		linkage.EnvRoot:     root != "",
		linkage.EnvFeatures: features != "",
		linkage.EnvProfile:  profile != "",
	}
	return maskedLookup(os.LookupEnv, hidden)
}

func maskedLookup(base linkage.LookupFunc, hidden map[string]bool) linkage.LookupFunc {
	return func(key string) (string, bool) {
		if hidden[key] {
			return "", false
		}
		return base(key)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if skipBindings {
		cfg.SkipBindings = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := pipeline.New(cfg)
	p.Lookup = lookup()
	p.DryRun = dryRun
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Print(string(res.Source))
		return nil
	}
	fmt.Printf("wrote %s\n", res.LinkFile)
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lc, err := cfg.LinkConfig(lookup())
	if err != nil {
		return err
	}
	plan, err := linkage.Resolve(lc)

	switch {
	case asJSON:
		if encErr := report.Encode(os.Stdout, report.NewPlanData(lc, plan, err)); encErr != nil {
			return encErr
		}
	case asLDFlags:
		if err == nil {
			flags := append(cgoemit.LDFlags(plan), cfg.ExtraLDFlags...)
			fmt.Println(strings.Join(flags, " "))
		}
	default:
		fmt.Println(viz.RenderPlan(lc, plan, err))
	}
	return err
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lc, err := cfg.LinkConfig(lookup())
	if err != nil {
		return err
	}
	cfg.Root = lc.Root
	outDir := cfg.Path(cfg.OutDir)
	cflags := make([]string, 0, len(cfg.IncludePaths))
	for _, inc := range cfg.IncludePaths {
		cflags = append(cflags, "-I"+cgoemit.SrcdirPath(outDir, cfg.Path(inc)))
	}
	m, err := bindgen.BuildManifest(cfg.BindgenOptions(lc.Features.Ext, cflags))
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = cfg.Path(cfg.Manifest)
	}
	if path == "-" {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(m)
	}
	if err := bindgen.WriteManifest(path, m); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runMatrix(cmd *cobra.Command, args []string) error {
	r := root
	if r == "" {
		r = "."
	}
	entries := linkage.Matrix(r)
	if asJSON {
		return report.ExportMatrix(os.Stdout, entries)
	}
	fmt.Println(viz.RenderMatrix(entries))
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configFile); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFile)
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		o, name, _ := strings.Cut(preset, "/")
		if cfg = config.GetPreset(o, name); cfg == nil {
			return fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}
	if err := config.Save(configFile, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", configFile)
	return nil
}
