package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sudo-give-me-coffee/Boop-GTK/internal/nameutil"
)

// Script metadata lives in the leading block comment as YAML front matter:
//
//	/* ---
//	name: Uppercase
//	tags: [case, text]
//	shortcut: ctrl+shift+u
//	--- */
//
// YAML being a JSON superset, classic Boop one-line JSON headers of the form
// `/** { "api": 1, "name": "..." } **/` parse too.
type header struct {
	API         int     `yaml:"api"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Icon        string  `yaml:"icon"`
	Tags        tagList `yaml:"tags"`
	Shortcut    string  `yaml:"shortcut"`
}

// tagList accepts either a YAML sequence or a comma-separated scalar.
type tagList []string

func (t *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var raw []string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*t = cleanTags(raw)
	case yaml.ScalarNode:
		*t = cleanTags(strings.Split(value.Value, ","))
	default:
		return fmt.Errorf("tags: expected list or string")
	}
	return nil
}

func cleanTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := map[string]bool{}
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// Parse turns one source unit into a descriptor. Any missing required
// metadata or malformed header yields an error; the caller records it in
// the load report and moves on.
func Parse(src Source) (*Descriptor, error) {
	id := identifierFromPath(src.Path)
	if err := nameutil.ValidateName(id); err != nil {
		return nil, fmt.Errorf("bad identifier from path %q: %w", src.Path, err)
	}

	body := string(src.Data)
	block, err := headerBlock(body)
	if err != nil {
		return nil, err
	}

	var h header
	if err := yaml.Unmarshal([]byte(block), &h); err != nil {
		return nil, fmt.Errorf("metadata header: %w", err)
	}
	name, _ := nameutil.SanitizeName(h.Name)
	if name == "" {
		return nil, fmt.Errorf("metadata header: missing required field %q", "name")
	}
	if err := nameutil.ValidateName(name); err != nil {
		return nil, fmt.Errorf("metadata header: %w", err)
	}
	shortcut, err := nameutil.NormalizeShortcut(h.Shortcut)
	if err != nil {
		return nil, fmt.Errorf("metadata header: %w", err)
	}
	if h.API == 0 {
		h.API = 1
	}

	return &Descriptor{
		Identifier:  id,
		Name:        name,
		Description: strings.TrimSpace(h.Description),
		Icon:        strings.TrimSpace(h.Icon),
		Tags:        h.Tags,
		Shortcut:    shortcut,
		API:         h.API,
		Path:        src.Path,
		Source:      body,
	}, nil
}

// IdentifierForPath derives the identifier a script file registers under.
// The directory watcher uses it to evict scripts whose file disappeared.
func IdentifierForPath(path string) string {
	return identifierFromPath(path)
}

// identifierFromPath derives the stable identifier from the file stem, e.g.
// "scripts/uppercase.boop" -> "uppercase".
func identifierFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// headerBlock extracts the YAML payload from the leading block comment.
func headerBlock(body string) (string, error) {
	rest := strings.TrimLeft(body, " \t\r\n")
	if !strings.HasPrefix(rest, "/*") {
		return "", fmt.Errorf("missing metadata header comment")
	}
	end := strings.Index(rest, "*/")
	if end < 0 {
		return "", fmt.Errorf("metadata header comment not closed")
	}
	block := rest[2:end]
	// tolerate decorative asterisks and front-matter fences
	block = strings.Trim(block, "* \t\r\n")
	block = strings.TrimPrefix(block, "---")
	block = strings.TrimSuffix(strings.TrimRight(block, " \t\r\n"), "---")
	block = strings.TrimSpace(block)
	if block == "" {
		return "", fmt.Errorf("metadata header is empty")
	}
	return block, nil
}
