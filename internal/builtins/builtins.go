// Package builtins ships the stock transformation scripts embedded in the
// binary and installs editable copies into the user scripts directory.
package builtins

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
)

//go:embed scripts/*.boop
var scriptsFS embed.FS

// Sources returns every embedded script as a registry source, sorted by
// path so load order (and identifier-conflict resolution) is stable.
func Sources() ([]registry.Source, error) {
	entries, err := scriptsFS.ReadDir("scripts")
	if err != nil {
		return nil, fmt.Errorf("read embedded scripts: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	out := make([]registry.Source, 0, len(entries))
	for _, e := range entries {
		data, err := scriptsFS.ReadFile("scripts/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded script %s: %w", e.Name(), err)
		}
		out = append(out, registry.Source{Path: e.Name(), Data: data})
	}
	return out, nil
}

// Install writes the embedded scripts into dir as editable files. Existing
// files are left alone unless force is set. It returns the paths written.
func Install(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scripts dir: %w", err)
	}
	srcs, err := Sources()
	if err != nil {
		return nil, err
	}

	var written []string
	for _, src := range srcs {
		dst := filepath.Join(dir, src.Path)
		if !force {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		if err := os.WriteFile(dst, src.Data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}
