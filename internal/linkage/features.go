package linkage

import (
	"fmt"
	"strings"
)

// Profile selects the Debug or Release build of the native libraries.
type Profile string

const (
	Debug   Profile = "Debug"
	Release Profile = "Release"
)

func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "release", "":
		return Release, nil
	}
	return "", fmt.Errorf("linkage: unknown build profile %q", s)
}

// Backend is a native library variant built for one GPU API.
type Backend string

const (
	D3D  Backend = "D3D"
	CUDA Backend = "CUDA"
)

// Features are the capability flags enabled for a build.
type Features struct {
	D3D  bool `yaml:"d3d" json:"d3d"`
	CUDA bool `yaml:"cuda" json:"cuda"`
	Ext  bool `yaml:"ext" json:"ext"`
}

// ParseFeatures reads a comma separated list such as "cuda,ext". "none" and the
// empty string enable nothing.
func ParseFeatures(s string) (Features, error) {
	var f Features
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "", "none":
		case "d3d":
			f.D3D = true
		case "cuda":
			f.CUDA = true
		case "ext":
			f.Ext = true
		default:
			return Features{}, fmt.Errorf("linkage: unknown feature %q", part)
		}
	}
	return f, nil
}

// Backends returns the enabled backends in link order.
func (f Features) Backends() []Backend {
	var out []Backend
	if f.D3D {
		out = append(out, D3D)
	}
	if f.CUDA {
		out = append(out, CUDA)
	}
	return out
}

func (f Features) String() string {
	var parts []string
	if f.D3D {
		parts = append(parts, "d3d")
	}
	if f.CUDA {
		parts = append(parts, "cuda")
	}
	if f.Ext {
		parts = append(parts, "ext")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
