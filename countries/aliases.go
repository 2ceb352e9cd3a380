package countries

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table maps a canonical display country name to the row-level spelling
// variants observed in the data set and in the boundary geometry source.
// The two were authored independently and disagree for a small set of
// entities; resolving that once here keeps every view consistent.
type Table map[string][]string

// Default returns the built-in alias table. It covers the known mismatches
// between the boundary source and the restaurant data.
func Default() Table {
	return Table{
		"United Kingdom": {"England", "Scotland", "Wales", "Northern Ireland"},
		"Netherlands":    {"The Netherlands", "Netherlands"},
		"Ireland":        {"Ireland", "Northern Ireland"},
		"United States":  {"United States", "USA", "United States of America"},
	}
}

// Load reads an alias table from a YAML file mapping canonical names to
// variant lists. Every canonical name must declare at least one variant.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	for canonical, variants := range t {
		if len(variants) == 0 {
			return nil, fmt.Errorf("alias file: %q declares no variants", canonical)
		}
	}
	return t, nil
}

// Resolve maps a display name to its row-level variants. Lookup is exact and
// case-sensitive. An undeclared name resolves to itself, since the store may
// use that exact spelling. The result is never empty.
func (t Table) Resolve(name string) []string {
	if variants, ok := t[name]; ok {
		out := make([]string, len(variants))
		copy(out, variants)
		return out
	}
	return []string{name}
}

// Covers reports whether a row-level spelling is reachable from the table:
// either it appears as a variant of some canonical name, or it is a canonical
// name itself. Spellings outside this set are candidates for new aliases.
func (t Table) Covers(spelling string) bool {
	if _, ok := t[spelling]; ok {
		return true
	}
	for _, variants := range t {
		for _, v := range variants {
			if v == spelling {
				return true
			}
		}
	}
	return false
}
