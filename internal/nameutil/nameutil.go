// Package nameutil validates script identifiers and display names and
// normalizes shortcut combos.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks whether the provided name is acceptable for a script
// identifier or display name. It checks for empty names, invalid UTF-8 and
// control runes. It does NOT mutate the input; use SanitizeName first when
// the value comes from an editable source.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("invalid name: contains invalid encoding")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid name: contains control character U+%04X (%q)", r, r)
		}
	}
	return nil
}

// SanitizeName removes control characters and zero-width runes commonly
// introduced by copy/paste, trims surrounding whitespace, and reports
// whether any change was made.
func SanitizeName(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	out := make([]rune, 0, len(name))
	changed := false
	for _, r := range name {
		if unicode.IsControl(r) {
			changed = true
			continue
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			changed = true
			continue
		}
		out = append(out, r)
	}
	res := strings.TrimSpace(string(out))
	if res != name {
		changed = true
	}
	return res, changed
}

// modifier order used by NormalizeShortcut so that "shift+ctrl+u" and
// "Ctrl+Shift+U" index identically.
var modifierRank = map[string]int{
	"ctrl":  0,
	"alt":   1,
	"shift": 2,
	"super": 3,
}

// NormalizeShortcut canonicalizes a key combo: lowercase, trimmed parts,
// modifiers in a fixed order, joined by '+'. An empty input stays empty; a
// combo without a non-modifier key is rejected.
func NormalizeShortcut(combo string) (string, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return "", nil
	}
	parts := strings.Split(combo, "+")
	var mods []string
	key := ""
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return "", fmt.Errorf("invalid shortcut %q: empty part", combo)
		}
		if _, ok := modifierRank[p]; ok {
			mods = append(mods, p)
			continue
		}
		if key != "" {
			return "", fmt.Errorf("invalid shortcut %q: more than one key", combo)
		}
		key = p
	}
	if key == "" {
		return "", fmt.Errorf("invalid shortcut %q: no key", combo)
	}
	for i := 0; i < len(mods); i++ {
		for j := i + 1; j < len(mods); j++ {
			if modifierRank[mods[j]] < modifierRank[mods[i]] {
				mods[i], mods[j] = mods[j], mods[i]
			}
		}
	}
	return strings.Join(append(mods, key), "+"), nil
}
