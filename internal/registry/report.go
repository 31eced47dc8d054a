package registry

import (
	"fmt"
	"strings"
)

// Skipped records one unit the loader rejected and why.
type Skipped struct {
	Path   string
	Reason string
}

// LoadReport summarizes a LoadAll pass. A bad unit never aborts loading; it
// shows up here instead.
type LoadReport struct {
	Loaded   int
	Skipped  []Skipped
	Warnings []string
}

// Summary renders a short human-readable report line, with skip reasons and
// warnings on following lines when present.
func (r LoadReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "loaded %d script(s)", r.Loaded)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, ", skipped %d", len(r.Skipped))
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "\n  skip %s: %s", s.Path, s.Reason)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "\n  warn: %s", w)
	}
	return b.String()
}
