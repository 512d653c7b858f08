package linkage

import (
	"fmt"
	"strings"
)

// OS is a target operating system with vendored NvFlex binaries.
type OS string

const (
	Windows OS = "windows"
	Linux   OS = "linux"
	Android OS = "android"
)

// SupportedOS lists the platforms in resolution order.
var SupportedOS = []OS{Windows, Linux, Android}

// ParseOS accepts GOOS style names, case-insensitively.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows":
		return Windows, nil
	case "linux":
		return Linux, nil
	case "android":
		return Android, nil
	case "":
		return "", fmt.Errorf("%w: target os", ErrMissingValue)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedOS, s)
}

func (o OS) Supported() bool {
	for _, s := range SupportedOS {
		if o == s {
			return true
		}
	}
	return false
}

// Target describes the platform being built for.
type Target struct {
	OS OS
	// PointerWidth is the word size in bits. Zero means unknown.
	PointerWidth int
	// Arch is the GOARCH of the build. It only shapes the emitted build
	// constraint; when empty a default is derived from OS and PointerWidth.
	Arch string
}

// ParsePointerWidth maps a pointer width setting to bits. "64" is the only value
// recognised as 64-bit; any other non-empty value is the legacy 32-bit variant.
// An empty string yields zero.
func ParsePointerWidth(s string) int {
	switch strings.TrimSpace(s) {
	case "":
		return 0
	case "64":
		return 64
	}
	return 32
}

var archWidth = map[string]int{
	"386": 32, "arm": 32, "mips": 32, "mipsle": 32,
	"amd64": 64, "arm64": 64, "loong64": 64, "mips64": 64, "mips64le": 64,
	"ppc64": 64, "ppc64le": 64, "riscv64": 64, "s390x": 64, "wasm": 64,
}

// PointerWidthForArch reports the pointer width of a GOARCH value.
func PointerWidthForArch(goarch string) (int, bool) {
	w, ok := archWidth[goarch]
	return w, ok
}

// GOARCH returns the architecture for build constraints.
func (t Target) GOARCH() string {
	if t.Arch != "" {
		return t.Arch
	}
	switch t.OS {
	case Windows:
		if t.PointerWidth == 64 {
			return "amd64"
		}
		return "386"
	case Android:
		return "arm64"
	}
	return "amd64"
}

func (t Target) String() string {
	if t.PointerWidth == 0 {
		return string(t.OS)
	}
	return fmt.Sprintf("%s/%d", t.OS, t.PointerWidth)
}
