package linkage

import (
	"fmt"
	"path/filepath"
)

const (
	coreLib = "NvFlex"
	extLib  = "NvFlexExt"
)

// VendorDir is the vendored library tree below the project root.
var VendorDir = filepath.Join("FleX", "lib")

// Config is the complete input to Resolve. It is built once per invocation.
type Config struct {
	Target   Target
	Profile  Profile
	Features Features
	// Root is the project directory containing the vendored FleX tree.
	Root string
}

// Plan is the linkage for one Config.
type Plan struct {
	Config     Config
	SearchPath string
	Libraries  []string
}

type platform struct {
	dir  string
	arch string
}

func platformFor(t Target) platform {
	switch t.OS {
	case Windows:
		if t.PointerWidth == 64 {
			return platform{dir: "win64", arch: "x64"}
		}
		return platform{dir: "win86", arch: "x86"}
	case Linux:
		return platform{dir: "linux64", arch: "x64"}
	default:
		return platform{dir: "android", arch: "aarch64"}
	}
}

// Validate reports whether cfg describes a linkable combination.
func Validate(cfg Config) error {
	t := cfg.Target
	if t.OS == "" {
		return resolveErr(cfg, ErrMissingValue, "target os is not set")
	}
	if !t.OS.Supported() {
		return resolveErr(cfg, ErrUnsupportedOS, "no prebuilt libraries for %q", t.OS)
	}
	if cfg.Root == "" {
		return resolveErr(cfg, ErrMissingValue, "project root is not set")
	}
	if t.OS != Android && t.PointerWidth == 0 {
		return resolveErr(cfg, ErrMissingValue, "pointer width is required for %s", t.OS)
	}
	if t.OS == Linux && t.PointerWidth != 64 {
		return resolveErr(cfg, ErrPointerWidth, "only 64-bit Linux is supported, got %d-bit", t.PointerWidth)
	}
	if cfg.Features.D3D && t.OS != Windows {
		return resolveErr(cfg, ErrBackendUnsupported, "D3D is not supported on %s, enable the CUDA feature", t.OS)
	}
	switch cfg.Profile {
	case Debug, Release:
	default:
		return resolveErr(cfg, ErrMissingValue, "build profile %q", cfg.Profile)
	}
	return nil
}

// Resolve validates cfg and computes its link plan.
func Resolve(cfg Config) (*Plan, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	p := platformFor(cfg.Target)
	plan := &Plan{
		Config:     cfg,
		SearchPath: filepath.Join(cfg.Root, VendorDir, p.dir),
	}
	for _, b := range cfg.Features.Backends() {
		plan.Libraries = append(plan.Libraries, libName(coreLib, cfg.Profile, b, p.arch))
		if cfg.Features.Ext {
			plan.Libraries = append(plan.Libraries, libName(extLib, cfg.Profile, b, p.arch))
		}
	}
	return plan, nil
}

func libName(base string, profile Profile, b Backend, arch string) string {
	return fmt.Sprintf("%s%s%s_%s", base, profile, b, arch)
}
