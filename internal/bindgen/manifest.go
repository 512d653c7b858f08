package bindgen

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ExtDefine is passed to the preprocessor when the extension library is enabled.
const ExtDefine = "USE_NV_EXT"

// Manifest is a c-for-go project file.
type Manifest struct {
	Generator  GeneratorSection  `yaml:"GENERATOR"`
	Parser     ParserSection     `yaml:"PARSER"`
	Translator TranslatorSection `yaml:"TRANSLATOR"`
}

type GeneratorSection struct {
	PackageName        string      `yaml:"PackageName"`
	PackageDescription string      `yaml:"PackageDescription,omitempty"`
	Includes           []string    `yaml:"Includes"`
	FlagGroups         []FlagGroup `yaml:"FlagGroups,omitempty"`
}

type FlagGroup struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
}

type ParserSection struct {
	IncludePaths []string       `yaml:"IncludePaths,omitempty"`
	SourcesPaths []string       `yaml:"SourcesPaths"`
	Defines      map[string]any `yaml:"Defines,omitempty"`
}

type TranslatorSection struct {
	ConstRules map[string]string `yaml:"ConstRules"`
	Rules      map[string][]Rule `yaml:"Rules"`
}

type Rule struct {
	Action string `yaml:"action"`
	From   string `yaml:"from"`
}

// Options controls manifest generation.
type Options struct {
	PackageName string
	// Header is the path the translator parses. The generated sources include
	// it by base name.
	Header       string
	IncludePaths []string
	// CFlags are emitted as #cgo CFLAGS in the generated bindings.
	CFlags    []string
	Ext       bool
	Allowlist Allowlist
}

// BuildManifest validates opts and assembles the translator manifest.
func BuildManifest(opts Options) (*Manifest, error) {
	if opts.Header == "" {
		return nil, ErrNoHeader
	}
	if _, err := opts.Allowlist.Compile(); err != nil {
		return nil, err
	}
	if opts.PackageName == "" {
		opts.PackageName = "flex"
	}

	m := &Manifest{
		Generator: GeneratorSection{
			PackageName:        opts.PackageName,
			PackageDescription: "Package " + opts.PackageName + " exposes the NVIDIA FleX native API.",
			Includes:           []string{filepath.Base(opts.Header)},
		},
		Parser: ParserSection{
			IncludePaths: opts.IncludePaths,
			SourcesPaths: []string{opts.Header},
		},
		Translator: TranslatorSection{
			ConstRules: map[string]string{"defines": "expand", "enum": "cgo"},
			Rules: map[string][]Rule{
				string(KindFunction): accept(opts.Allowlist.Functions),
				string(KindType):     accept(opts.Allowlist.Types),
				string(KindConst):    accept(opts.Allowlist.Consts),
			},
		},
	}

	cflags := append([]string{}, opts.CFlags...)
	if opts.Ext {
		m.Parser.Defines = map[string]any{ExtDefine: 1}
		cflags = append(cflags, "-D"+ExtDefine)
	}
	if len(cflags) > 0 {
		m.Generator.FlagGroups = []FlagGroup{{Name: "CFLAGS", Flags: cflags}}
	}
	return m, nil
}

func accept(patterns []string) []Rule {
	rules := make([]Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, Rule{Action: "accept", From: p})
	}
	return rules
}

// WriteManifest stores m as YAML at path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("bindgen: encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest written by WriteManifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("bindgen: decode manifest: %w", err)
	}
	return &m, nil
}
