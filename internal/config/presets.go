package config

import (
	"sort"

	"github.com/san-kum/goflex/internal/linkage"
)

// Presets are keyed by target OS, then preset name.
var Presets = map[string]map[string]*Config{
	"windows": {
		"d3d": {
			Target:   TargetConfig{OS: "windows", Arch: "amd64"},
			Features: linkage.Features{D3D: true},
		},
		"d3d-ext": {
			Target:   TargetConfig{OS: "windows", Arch: "amd64"},
			Features: linkage.Features{D3D: true, Ext: true},
		},
		"cuda": {
			Target:   TargetConfig{OS: "windows", Arch: "amd64"},
			Features: linkage.Features{CUDA: true},
		},
		"cuda-ext": {
			Target:   TargetConfig{OS: "windows", Arch: "amd64"},
			Features: linkage.Features{CUDA: true, Ext: true},
		},
		"x86-d3d": {
			Target:   TargetConfig{OS: "windows", Arch: "386"},
			Features: linkage.Features{D3D: true},
		},
	},
	"linux": {
		"cuda": {
			Target:   TargetConfig{OS: "linux", Arch: "amd64"},
			Features: linkage.Features{CUDA: true},
		},
		"cuda-ext": {
			Target:       TargetConfig{OS: "linux", Arch: "amd64"},
			Features:     linkage.Features{CUDA: true, Ext: true},
			ExtraLDFlags: []string{"-lcudart", "-lstdc++"},
		},
	},
	"android": {
		"cuda": {
			Target:   TargetConfig{OS: "android", Arch: "arm64"},
			Features: linkage.Features{CUDA: true},
		},
		"cuda-ext": {
			Target:   TargetConfig{OS: "android", Arch: "arm64"},
			Features: linkage.Features{CUDA: true, Ext: true},
		},
	},
}

// GetPreset returns a full configuration for a preset, or nil if unknown.
func GetPreset(goos, name string) *Config {
	byName, ok := Presets[goos]
	if !ok {
		return nil
	}
	p, ok := byName[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Target = p.Target
	cfg.Features = p.Features
	cfg.ExtraLDFlags = append([]string(nil), p.ExtraLDFlags...)
	return cfg
}

func ListPresets(goos string) []string {
	byName, ok := Presets[goos]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
