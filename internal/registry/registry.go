package registry

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/nameutil"
)

// Registry holds all known script descriptors behind O(1) identifier and
// shortcut indexes. It is safe for concurrent use; lookups take a read
// lock, LoadAll/Reload/Remove take the write lock.
type Registry struct {
	mu         sync.RWMutex
	byID       map[string]*Descriptor
	byShortcut map[string]*Descriptor
	log        *zap.Logger
}

// New returns an empty registry. A nil logger is replaced with a no-op one.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		byID:       make(map[string]*Descriptor),
		byShortcut: make(map[string]*Descriptor),
		log:        log,
	}
}

// LoadAll replaces the registry contents from the given sources, in order.
// Malformed units are skipped and recorded in the report; duplicate
// identifiers and shortcuts are resolved last-loaded-wins with a warning.
func (r *Registry) LoadAll(sources []Source) LoadReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]*Descriptor, len(sources))
	r.byShortcut = make(map[string]*Descriptor)

	var report LoadReport
	for _, src := range sources {
		d, err := Parse(src)
		if err != nil {
			report.Skipped = append(report.Skipped, Skipped{Path: src.Path, Reason: err.Error()})
			r.log.Warn("script skipped", zap.String("path", src.Path), zap.Error(err))
			continue
		}
		report.Warnings = append(report.Warnings, r.insertLocked(d)...)
	}
	report.Loaded = len(r.byID)
	r.log.Info("scripts loaded",
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("warnings", len(report.Warnings)))
	return report
}

// insertLocked publishes a descriptor and returns conflict warnings. The
// caller must hold the write lock.
func (r *Registry) insertLocked(d *Descriptor) []string {
	var warnings []string

	if prev, ok := r.byID[d.Identifier]; ok {
		warnings = append(warnings, fmt.Sprintf(
			"identifier %q declared by both %s and %s; last loaded wins", d.Identifier, prev.Path, d.Path))
		r.dropShortcutLocked(prev)
	}
	r.byID[d.Identifier] = d

	if d.Shortcut != "" {
		if prev, ok := r.byShortcut[d.Shortcut]; ok && prev.Identifier != d.Identifier {
			warnings = append(warnings, fmt.Sprintf(
				"shortcut %q bound by both %q and %q; last loaded wins", d.Shortcut, prev.Identifier, d.Identifier))
		}
		r.byShortcut[d.Shortcut] = d
	}
	for _, w := range warnings {
		r.log.Warn(w)
	}
	return warnings
}

// dropShortcutLocked removes d's shortcut index entry when it still points
// at d. The caller must hold the write lock.
func (r *Registry) dropShortcutLocked(d *Descriptor) {
	if d.Shortcut == "" {
		return
	}
	if cur, ok := r.byShortcut[d.Shortcut]; ok && cur == d {
		delete(r.byShortcut, d.Shortcut)
	}
}

// FindByIdentifier returns the most recently loaded descriptor for id, or
// nil when unknown.
func (r *Registry) FindByIdentifier(id string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// FindByShortcut returns the descriptor bound to the given key combo, or
// nil. The combo is normalized before lookup, so "Shift+Ctrl+U" and
// "ctrl+shift+u" resolve identically.
func (r *Registry) FindByShortcut(combo string) *Descriptor {
	normalized, err := nameutil.NormalizeShortcut(combo)
	if err != nil || normalized == "" {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byShortcut[normalized]
}

// Reload re-parses a single unit and replaces its descriptor, leaving the
// rest of the registry untouched. The sandbox keys compiled handles on the
// source hash, so the replacement also invalidates any stale compilation.
func (r *Registry) Reload(src Source) (*Descriptor, error) {
	d, err := Parse(src)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(d)
	r.log.Debug("script reloaded", zap.String("identifier", d.Identifier))
	return d, nil
}

// Remove drops a descriptor and its shortcut binding. It reports whether
// the identifier was present.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byID[id]
	if !ok {
		return false
	}
	r.dropShortcutLocked(d)
	delete(r.byID, id)
	return true
}

// All returns every descriptor sorted by display name, ties broken by
// identifier for determinism.
func (r *Registry) All() []*Descriptor {
	r.mu.RLock()
	out := make([]*Descriptor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Identifier < out[j].Identifier
	})
	return out
}

// Tags returns a histogram of tag usage across all descriptors.
func (r *Registry) Tags() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int)
	for _, d := range r.byID {
		for _, tag := range d.Tags {
			out[tag]++
		}
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
