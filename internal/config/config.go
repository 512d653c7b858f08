package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/goflex/internal/bindgen"
	"github.com/san-kum/goflex/internal/linkage"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile     = "flexgen.yaml"
	DefaultPackage  = "flex"
	DefaultOutDir   = "flex"
	DefaultHeader   = "flex/flex.h"
	DefaultInclude  = "FleX/include"
	DefaultManifest = "flex/flex.yml"
	DefaultProfile  = "release"
)

type Config struct {
	Target       TargetConfig      `yaml:"target"`
	Profile      string            `yaml:"profile"`
	Features     linkage.Features  `yaml:"features"`
	Root         string            `yaml:"root"`
	Package      string            `yaml:"package"`
	OutDir       string            `yaml:"out_dir"`
	Header       string            `yaml:"header"`
	IncludePaths []string          `yaml:"include_paths"`
	Manifest     string            `yaml:"manifest"`
	Translator   TranslatorConfig  `yaml:"translator"`
	Allowlist    bindgen.Allowlist `yaml:"allowlist"`
	ExtraLDFlags []string          `yaml:"extra_ldflags"`
	SkipBindings bool              `yaml:"skip_bindings"`
}

// TargetConfig pins the build target. Empty fields are taken from GOOS/GOARCH.
type TargetConfig struct {
	OS           string `yaml:"os"`
	Arch         string `yaml:"arch"`
	PointerWidth string `yaml:"pointer_width"`
}

type TranslatorConfig struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

func DefaultConfig() *Config {
	return &Config{
		Profile:      DefaultProfile,
		Package:      DefaultPackage,
		OutDir:       DefaultOutDir,
		Header:       DefaultHeader,
		IncludePaths: []string{DefaultInclude},
		Manifest:     DefaultManifest,
		Translator:   TranslatorConfig{Path: bindgen.DefaultTranslator},
		Allowlist:    bindgen.DefaultAllowlist,
	}
}

// Load reads a config file. A missing root defaults to the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Root == "" {
		dir, err := filepath.Abs(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		cfg.Root = dir
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Path resolves p against the project root.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// LinkConfig builds the resolver input from the file settings overlaid with
// the environment read through lookup.
func (c *Config) LinkConfig(lookup linkage.LookupFunc) (linkage.Config, error) {
	base := linkage.Config{
		Target:   linkage.Target{Arch: c.Target.Arch},
		Features: c.Features,
		Root:     c.Root,
	}
	if c.Target.OS != "" {
		o, err := linkage.ParseOS(c.Target.OS)
		if err != nil {
			return linkage.Config{}, fmt.Errorf("config: target: %w", err)
		}
		base.Target.OS = o
	}
	if w, ok := linkage.PointerWidthForArch(c.Target.Arch); ok {
		base.Target.PointerWidth = w
	}
	if c.Target.PointerWidth != "" {
		base.Target.PointerWidth = linkage.ParsePointerWidth(c.Target.PointerWidth)
	}
	p, err := linkage.ParseProfile(c.Profile)
	if err != nil {
		return linkage.Config{}, fmt.Errorf("config: %w", err)
	}
	base.Profile = p

	// Pinned target fields win over the environment.
	cfg, err := linkage.FromEnv(lookup, base)
	if err != nil {
		return linkage.Config{}, err
	}
	if c.Target.OS != "" {
		cfg.Target.OS = base.Target.OS
	}
	if c.Target.Arch != "" {
		cfg.Target.Arch = base.Target.Arch
		if base.Target.PointerWidth != 0 {
			cfg.Target.PointerWidth = base.Target.PointerWidth
		}
	}
	if c.Target.PointerWidth != "" {
		cfg.Target.PointerWidth = base.Target.PointerWidth
	}
	return cfg, nil
}

// BindgenOptions returns the translator options for a build with ext enabled or not.
func (c *Config) BindgenOptions(ext bool, cflags []string) bindgen.Options {
	includes := make([]string, 0, len(c.IncludePaths))
	for _, inc := range c.IncludePaths {
		includes = append(includes, c.Path(inc))
	}
	return bindgen.Options{
		PackageName:  c.Package,
		Header:       c.Path(c.Header),
		IncludePaths: includes,
		CFlags:       cflags,
		Ext:          ext,
		Allowlist:    c.Allowlist,
	}
}
