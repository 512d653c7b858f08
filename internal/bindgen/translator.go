package bindgen

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// DefaultTranslator is the header-to-Go translator invoked when none is configured.
const DefaultTranslator = "c-for-go"

// Translator turns a manifest into Go sources under outDir.
type Translator interface {
	Translate(ctx context.Context, manifestPath, outDir string) error
}

// Command runs an external translator binary as
// `<Path> <Args...> -out <outDir> <manifest>`.
type Command struct {
	Path string
	Args []string
	Dir  string
}

func (c *Command) Translate(ctx context.Context, manifestPath, outDir string) error {
	path := c.Path
	if path == "" {
		path = DefaultTranslator
	}
	args := append(append([]string{}, c.Args...), "-out", outDir, manifestPath)

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = c.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	Logger().Debug("running translator",
		zap.String("translator", path),
		zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v: %s", ErrTranslator, path, err, strings.TrimSpace(out.String()))
	}
	return nil
}

// Generate writes the manifest for opts to manifestPath and runs tr on it.
func Generate(ctx context.Context, tr Translator, opts Options, manifestPath, outDir string) error {
	m, err := BuildManifest(opts)
	if err != nil {
		return err
	}
	if err := WriteManifest(manifestPath, m); err != nil {
		return err
	}
	Logger().Info("wrote translator manifest",
		zap.String("manifest", manifestPath),
		zap.Bool("ext", opts.Ext))

	if err := tr.Translate(ctx, manifestPath, outDir); err != nil {
		return err
	}
	Logger().Info("generated bindings", zap.String("output", outDir))
	return nil
}
