// Package loader reads user scripts from disk into registry sources.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/registry"
)

// Ext is the file extension scripts are recognized by.
const Ext = ".boop"

// LoadDir collects every script file under dir, recursively, sorted by
// path. A missing directory is not an error; it just yields no sources.
func LoadDir(dir string) ([]registry.Source, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat scripts dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scripts path %s is not a directory", dir)
	}

	var out []registry.Source
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), Ext) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read script %s: %w", path, err)
		}
		out = append(out, registry.Source{Path: path, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// LoadFile reads a single script file into a source.
func LoadFile(path string) (registry.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Source{}, fmt.Errorf("read script %s: %w", path, err)
	}
	return registry.Source{Path: path, Data: data}, nil
}
