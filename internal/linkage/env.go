package linkage

import (
	"fmt"
	"os"
)

// Environment variables read by FromEnv.
const (
	EnvOS           = "GOOS"
	EnvArch         = "GOARCH"
	EnvPointerWidth = "FLEX_POINTER_WIDTH"
	EnvRoot         = "FLEX_ROOT"
	EnvFeatures     = "FLEX_FEATURES"
	EnvProfile      = "FLEX_PROFILE"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv overlays environment settings onto base. Unset variables leave the
// corresponding field of base untouched.
func FromEnv(lookup LookupFunc, base Config) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg := base

	if v, ok := lookup(EnvOS); ok && v != "" {
		o, err := ParseOS(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvOS, err)
		}
		cfg.Target.OS = o
	}
	if v, ok := lookup(EnvArch); ok && v != "" {
		cfg.Target.Arch = v
		if w, known := PointerWidthForArch(v); known {
			cfg.Target.PointerWidth = w
		}
	}
	if v, ok := lookup(EnvPointerWidth); ok && v != "" {
		cfg.Target.PointerWidth = ParsePointerWidth(v)
	}
	if v, ok := lookup(EnvRoot); ok && v != "" {
		cfg.Root = v
	}
	if v, ok := lookup(EnvFeatures); ok {
		f, err := ParseFeatures(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFeatures, err)
		}
		cfg.Features = f
	}
	if v, ok := lookup(EnvProfile); ok && v != "" {
		p, err := ParseProfile(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvProfile, err)
		}
		cfg.Profile = p
	}
	return cfg, nil
}

// MapLookup adapts a map for FromEnv.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}
