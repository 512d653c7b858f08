package bindgen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildManifest(t *testing.T) {
	m, err := BuildManifest(Options{
		Header:       "flex/flex.h",
		IncludePaths: []string{"FleX/include"},
		CFlags:       []string{"-I${SRCDIR}/../FleX/include"},
		Allowlist:    DefaultAllowlist,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if m.Generator.PackageName != "flex" {
		t.Errorf("expected default package flex, got %s", m.Generator.PackageName)
	}
	if m.Generator.Includes[0] != "flex.h" {
		t.Errorf("expected include flex.h, got %v", m.Generator.Includes)
	}
	if m.Parser.Defines != nil {
		t.Errorf("expected no defines without ext, got %v", m.Parser.Defines)
	}

	want := map[string][]Rule{
		"function": {{Action: "accept", From: "^NvFlex"}},
		"type":     {{Action: "accept", From: "^NvFlex"}},
		"const": {
			{Action: "accept", From: "^NvFlex"},
			{Action: "accept", From: "^eNvFlex"},
			{Action: "accept", From: "^NV_FLEX_"},
		},
	}
	if diff := cmp.Diff(want, m.Translator.Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]FlagGroup{{Name: "CFLAGS", Flags: []string{"-I${SRCDIR}/../FleX/include"}}}, m.Generator.FlagGroups); diff != "" {
		t.Errorf("flag groups mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildManifestExt(t *testing.T) {
	m, err := BuildManifest(Options{PackageName: "nvflex", Header: "flex.h", Ext: true, Allowlist: DefaultAllowlist})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Parser.Defines[ExtDefine]; !ok {
		t.Errorf("expected %s define, got %v", ExtDefine, m.Parser.Defines)
	}
	flags := m.Generator.FlagGroups[0].Flags
	if flags[len(flags)-1] != "-DUSE_NV_EXT" {
		t.Errorf("expected -DUSE_NV_EXT in cflags, got %v", flags)
	}
}

func TestBuildManifestErrors(t *testing.T) {
	if _, err := BuildManifest(Options{Allowlist: DefaultAllowlist}); !errors.Is(err, ErrNoHeader) {
		t.Errorf("expected ErrNoHeader, got %v", err)
	}
	if _, err := BuildManifest(Options{Header: "flex.h", Allowlist: Allowlist{Functions: []string{"["}}}); !errors.Is(err, ErrPattern) {
		t.Errorf("expected ErrPattern, got %v", err)
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flex.yml")
	m, err := BuildManifest(Options{Header: "flex.h", Ext: true, Allowlist: DefaultAllowlist})
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"GENERATOR:", "PARSER:", "TRANSLATOR:", "USE_NV_EXT", "^NV_FLEX_"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("manifest missing %q:\n%s", key, data)
		}
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Parser.SourcesPaths[0] != "flex.h" {
		t.Errorf("expected source flex.h, got %v", loaded.Parser.SourcesPaths)
	}
}
