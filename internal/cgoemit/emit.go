// Package cgoemit renders a link plan as cgo directives.
package cgoemit

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/san-kum/goflex/internal/linkage"
)

var fileTmpl = template.Must(template.New("link").Parse(`// Code generated by flexgen. DO NOT EDIT.

//go:build {{.Constraint}}

package {{.Package}}

// Linked: {{.Profile}} profile, features {{.Features}}.

/*
{{- range .Flags}}
#cgo LDFLAGS: {{.}}
{{- end}}
*/
import "C"
`))

// Options controls file rendering.
type Options struct {
	Package string
	// OutDir is the directory the file is written to. The search path is made
	// relative to it through ${SRCDIR}.
	OutDir       string
	ExtraLDFlags []string
}

// Constraint is the build expression selecting the target.
func Constraint(t linkage.Target) string {
	return fmt.Sprintf("%s && %s", t.OS, t.GOARCH())
}

// FileName is the name of the generated file for t.
func FileName(t linkage.Target) string {
	return fmt.Sprintf("zflex_link_%s_%s.go", t.OS, t.GOARCH())
}

// LDFlags returns the linker flags for plan with an absolute search path.
func LDFlags(plan *linkage.Plan) []string {
	search := plan.SearchPath
	if abs, err := filepath.Abs(search); err == nil {
		search = abs
	}
	return linkFlags(filepath.ToSlash(search), plan.Libraries)
}

func linkFlags(search string, libs []string) []string {
	flags := make([]string, 0, len(libs)+1)
	flags = append(flags, "-L"+search)
	for _, lib := range libs {
		flags = append(flags, "-l"+lib)
	}
	return flags
}

// SrcdirPath expresses target relative to outDir through ${SRCDIR} so the
// generated file stays valid when the module is checked out elsewhere.
func SrcdirPath(outDir, target string) string {
	absOut, err1 := filepath.Abs(outDir)
	absTarget, err2 := filepath.Abs(target)
	if err1 != nil || err2 != nil {
		return filepath.ToSlash(target)
	}
	rel, err := filepath.Rel(absOut, absTarget)
	if err != nil {
		return filepath.ToSlash(absTarget)
	}
	return "${SRCDIR}/" + filepath.ToSlash(rel)
}

// Render produces the gofmt'd source of the link file for plan.
func Render(plan *linkage.Plan, opts Options) ([]byte, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = "flex"
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	flags := linkFlags(SrcdirPath(outDir, plan.SearchPath), plan.Libraries)
	for _, f := range opts.ExtraLDFlags {
		if strings.TrimSpace(f) != "" {
			flags = append(flags, f)
		}
	}

	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, map[string]any{
		"Constraint": Constraint(plan.Config.Target),
		"Package":    pkg,
		"Profile":    plan.Config.Profile,
		"Features":   plan.Config.Features,
		"Flags":      flags,
	})
	if err != nil {
		return nil, fmt.Errorf("cgoemit: render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("cgoemit: format: %w", err)
	}
	return src, nil
}

// Write renders plan into opts.OutDir and returns the file path.
func Write(plan *linkage.Plan, opts Options) (string, error) {
	src, err := Render(plan, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(opts.OutDir, FileName(plan.Config.Target))
	if err := os.WriteFile(path, src, 0644); err != nil {
		return "", err
	}
	return path, nil
}
