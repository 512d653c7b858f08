package cgoemit

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/goflex/internal/linkage"
)

func resolve(t *testing.T, cfg linkage.Config) *linkage.Plan {
	t.Helper()
	plan, err := linkage.Resolve(cfg)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	return plan
}

func TestRender(t *testing.T) {
	root := t.TempDir()
	plan := resolve(t, linkage.Config{
		Target:   linkage.Target{OS: linkage.Linux, PointerWidth: 64},
		Profile:  linkage.Release,
		Features: linkage.Features{CUDA: true, Ext: true},
		Root:     root,
	})

	src, err := Render(plan, Options{Package: "flex", OutDir: filepath.Join(root, "flex"), ExtraLDFlags: []string{"-lcudart"}})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	text := string(src)

	if !strings.HasPrefix(text, "// Code generated by flexgen. DO NOT EDIT.") {
		t.Errorf("missing generated header:\n%s", text)
	}
	if !strings.Contains(text, "//go:build linux && amd64\n") {
		t.Errorf("missing build constraint:\n%s", text)
	}

	var got []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#cgo LDFLAGS: ") {
			got = append(got, strings.TrimPrefix(line, "#cgo LDFLAGS: "))
		}
	}
	want := []string{
		"-L${SRCDIR}/../FleX/lib/linux64",
		"-lNvFlexReleaseCUDA_x64",
		"-lNvFlexExtReleaseCUDA_x64",
		"-lcudart",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("directives mismatch (-want +got):\n%s", diff)
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "link.go", src, parser.ImportsOnly)
	if err != nil {
		t.Fatalf("rendered file does not parse: %v", err)
	}
	if f.Name.Name != "flex" {
		t.Errorf("expected package flex, got %s", f.Name.Name)
	}
	if len(f.Imports) != 1 || f.Imports[0].Path.Value != `"C"` {
		t.Errorf("expected single import of C")
	}
}

func TestRenderNoLibraries(t *testing.T) {
	plan := resolve(t, linkage.Config{
		Target:   linkage.Target{OS: linkage.Windows, PointerWidth: 32},
		Profile:  linkage.Debug,
		Features: linkage.Features{Ext: true},
		Root:     ".",
	})
	src, err := Render(plan, Options{})
	if err != nil {
		t.Fatal(err)
	}
	text := string(src)
	if strings.Count(text, "#cgo LDFLAGS:") != 1 {
		t.Errorf("expected only the search path directive:\n%s", text)
	}
	if !strings.Contains(text, "//go:build windows && 386") {
		t.Errorf("expected windows/386 constraint:\n%s", text)
	}
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "flex")
	plan := resolve(t, linkage.Config{
		Target:   linkage.Target{OS: linkage.Android},
		Profile:  linkage.Release,
		Features: linkage.Features{CUDA: true},
		Root:     root,
	})

	path, err := Write(plan, Options{OutDir: out})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if filepath.Base(path) != "zflex_link_android_arm64.go" {
		t.Errorf("unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "-lNvFlexReleaseCUDA_aarch64") {
		t.Errorf("missing library directive:\n%s", data)
	}
}

func TestLDFlags(t *testing.T) {
	plan := resolve(t, linkage.Config{
		Target:   linkage.Target{OS: linkage.Windows, PointerWidth: 64},
		Profile:  linkage.Debug,
		Features: linkage.Features{D3D: true},
		Root:     "/opt/goflex",
	})
	flags := LDFlags(plan)
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %v", flags)
	}
	if !strings.HasPrefix(flags[0], "-L") || !strings.HasSuffix(flags[0], "FleX/lib/win64") {
		t.Errorf("unexpected search flag %s", flags[0])
	}
	if flags[1] != "-lNvFlexDebugD3D_x64" {
		t.Errorf("unexpected library flag %s", flags[1])
	}
}

func TestConstraint(t *testing.T) {
	if c := Constraint(linkage.Target{OS: linkage.Android}); c != "android && arm64" {
		t.Errorf("got %s", c)
	}
	if c := Constraint(linkage.Target{OS: linkage.Windows, PointerWidth: 64, Arch: "arm64"}); c != "windows && arm64" {
		t.Errorf("got %s", c)
	}
}
