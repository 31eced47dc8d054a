package registry

import (
	"fmt"
	"strings"
	"testing"
)

func scriptSource(path, name, shortcut, tags, body string) Source {
	var b strings.Builder
	b.WriteString("/* ---\n")
	fmt.Fprintf(&b, "name: %s\n", name)
	if shortcut != "" {
		fmt.Fprintf(&b, "shortcut: %s\n", shortcut)
	}
	if tags != "" {
		fmt.Fprintf(&b, "tags: [%s]\n", tags)
	}
	b.WriteString("--- */\n\npackage script\n\n")
	b.WriteString(body)
	return Source{Path: path, Data: []byte(b.String())}
}

func TestLoadAllSkipsMalformedUnits(t *testing.T) {
	r := New(nil)
	report := r.LoadAll([]Source{
		scriptSource("good.boop", "Good", "", "demo", "func Main(p *boop.Payload) {}\n"),
		{Path: "bad.boop", Data: []byte("no header at all\n")},
		scriptSource("also-good.boop", "Also Good", "", "", "func Main(p *boop.Payload) {}\n"),
	})

	if report.Loaded != 2 {
		t.Fatalf("Loaded = %d, want 2", report.Loaded)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Path != "bad.boop" {
		t.Fatalf("Skipped = %+v", report.Skipped)
	}
	if report.Skipped[0].Reason == "" {
		t.Fatalf("skip reason must be recorded")
	}
	if r.FindByIdentifier("good") == nil || r.FindByIdentifier("also-good") == nil {
		t.Fatalf("well-formed scripts must be queryable after a bad unit")
	}
}

func TestDuplicateIdentifierLastWins(t *testing.T) {
	r := New(nil)
	report := r.LoadAll([]Source{
		scriptSource("builtin/trim.boop", "Trim (builtin)", "", "", "func Main(p *boop.Payload) {}\n"),
		scriptSource("user/trim.boop", "Trim (user)", "", "", "func Main(p *boop.Payload) {}\n"),
	})

	if report.Loaded != 1 {
		t.Fatalf("Loaded = %d, want 1", report.Loaded)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one identifier conflict", report.Warnings)
	}
	d := r.FindByIdentifier("trim")
	if d == nil || d.Name != "Trim (user)" {
		t.Fatalf("expected later-loaded descriptor, got %+v", d)
	}
}

func TestDuplicateShortcutLastWins(t *testing.T) {
	r := New(nil)
	report := r.LoadAll([]Source{
		scriptSource("upper.boop", "Upper", "Ctrl+U", "", "func Main(p *boop.Payload) {}\n"),
		scriptSource("underline.boop", "Underline", "ctrl+u", "", "func Main(p *boop.Payload) {}\n"),
	})

	if len(report.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one shortcut conflict", report.Warnings)
	}
	d := r.FindByShortcut("Ctrl+U")
	if d == nil || d.Identifier != "underline" {
		t.Fatalf("FindByShortcut should return later-loaded descriptor, got %+v", d)
	}
}

func TestReloadReplacesDescriptor(t *testing.T) {
	r := New(nil)
	r.LoadAll([]Source{
		scriptSource("upper.boop", "Upper", "ctrl+u", "", "func Main(p *boop.Payload) {}\n"),
	})

	d, err := r.Reload(scriptSource("upper.boop", "Uppercase!", "ctrl+shift+u", "", "func Main(p *boop.Payload) { p.SetText(\"x\") }\n"))
	if err != nil {
		t.Fatalf("Reload(): %v", err)
	}
	if d.Name != "Uppercase!" {
		t.Fatalf("reloaded Name = %q", d.Name)
	}
	got := r.FindByIdentifier("upper")
	if got == nil || got.Name != "Uppercase!" {
		t.Fatalf("FindByIdentifier returned stale descriptor: %+v", got)
	}
	if r.FindByShortcut("ctrl+u") != nil {
		t.Fatalf("stale shortcut binding should be gone")
	}
	if r.FindByShortcut("ctrl+shift+u") == nil {
		t.Fatalf("new shortcut binding missing")
	}
}

func TestRemove(t *testing.T) {
	r := New(nil)
	r.LoadAll([]Source{
		scriptSource("upper.boop", "Upper", "ctrl+u", "", "func Main(p *boop.Payload) {}\n"),
	})
	if !r.Remove("upper") {
		t.Fatalf("Remove should report presence")
	}
	if r.Remove("upper") {
		t.Fatalf("second Remove should report absence")
	}
	if r.FindByIdentifier("upper") != nil || r.FindByShortcut("ctrl+u") != nil {
		t.Fatalf("descriptor and shortcut must be gone")
	}
}

func TestTagsHistogram(t *testing.T) {
	r := New(nil)
	r.LoadAll([]Source{
		scriptSource("a.boop", "A", "", "text, case", "func Main(p *boop.Payload) {}\n"),
		scriptSource("b.boop", "B", "", "text", "func Main(p *boop.Payload) {}\n"),
	})
	tags := r.Tags()
	if tags["text"] != 2 || tags["case"] != 1 {
		t.Fatalf("Tags() = %v", tags)
	}
}
