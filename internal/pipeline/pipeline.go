// Package pipeline runs a complete flexgen build step: binding generation
// followed by linkage resolution and emission of the cgo link file.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/san-kum/goflex/internal/bindgen"
	"github.com/san-kum/goflex/internal/cgoemit"
	"github.com/san-kum/goflex/internal/config"
	"github.com/san-kum/goflex/internal/linkage"
	"go.uber.org/zap"
)

type Pipeline struct {
	Config *config.Config
	// Lookup reads the environment. Nil means os.LookupEnv.
	Lookup linkage.LookupFunc
	// Translator defaults to the command named in Config.Translator.
	Translator bindgen.Translator
	// DryRun renders the link file without writing anything.
	DryRun bool
}

type Result struct {
	Plan     *linkage.Plan
	Manifest string
	LinkFile string
	Source   []byte
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{Config: cfg}
}

func (p *Pipeline) translator() bindgen.Translator {
	if p.Translator != nil {
		return p.Translator
	}
	return &bindgen.Command{
		Path: p.Config.Translator.Path,
		Args: p.Config.Translator.Args,
		Dir:  p.Config.Root,
	}
}

// Run executes every step and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	c := *p.Config
	cfg := &c
	lc, err := cfg.LinkConfig(p.Lookup)
	if err != nil {
		return nil, err
	}
	// Output paths follow the same root the linkage resolves against.
	cfg.Root = lc.Root
	log := Logger().With(
		zap.String("os", string(lc.Target.OS)),
		zap.Int("width", lc.Target.PointerWidth),
		zap.String("profile", string(lc.Profile)),
		zap.Stringer("features", lc.Features))

	outDir := cfg.Path(cfg.OutDir)
	res := &Result{}

	if !cfg.SkipBindings && !p.DryRun {
		res.Manifest = cfg.Path(cfg.Manifest)
		if pkg := filepath.Base(outDir); pkg != cfg.Package {
			log.Warn("translator output directory does not match package name",
				zap.String("output", outDir), zap.String("package", cfg.Package))
		}
		opts := cfg.BindgenOptions(lc.Features.Ext, p.cflags(outDir))
		if err := bindgen.Generate(ctx, p.translator(), opts, res.Manifest, filepath.Dir(outDir)); err != nil {
			return nil, fmt.Errorf("generate bindings: %w", err)
		}
	}

	plan, err := linkage.Resolve(lc)
	if err != nil {
		log.Error("linkage resolution failed", zap.Error(err))
		return nil, err
	}
	res.Plan = plan
	log.Info("resolved linkage", zap.String("search_path", plan.SearchPath))
	for _, lib := range plan.Libraries {
		log.Debug("link", zap.String("library", lib))
	}

	emitOpts := cgoemit.Options{Package: cfg.Package, OutDir: outDir, ExtraLDFlags: cfg.ExtraLDFlags}
	if p.DryRun {
		res.Source, err = cgoemit.Render(plan, emitOpts)
		return res, err
	}
	res.LinkFile, err = cgoemit.Write(plan, emitOpts)
	if err != nil {
		return nil, fmt.Errorf("write link file: %w", err)
	}
	log.Info("wrote link file", zap.String("output", res.LinkFile))
	return res, nil
}

func (p *Pipeline) cflags(outDir string) []string {
	flags := make([]string, 0, len(p.Config.IncludePaths))
	for _, inc := range p.Config.IncludePaths {
		flags = append(flags, "-I"+cgoemit.SrcdirPath(outDir, p.Config.Path(inc)))
	}
	return flags
}
