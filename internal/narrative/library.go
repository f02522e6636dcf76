// Package narrative loads the category-keyed phrase libraries used to
// annotate screening results and picks phrases from them. Phrases are
// presentation-only and never influence scores.
package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownCategory is returned for a category the library does not define.
var ErrUnknownCategory = errors.New("unknown phrase category")

// Library maps a category name to its non-empty list of phrases.
type Library struct {
	name       string
	categories map[string][]string
}

// NewLibrary builds a library from an in-memory mapping.
func NewLibrary(name string, categories map[string][]string) *Library {
	return &Library{name: name, categories: categories}
}

// LoadLibrary reads a phrase library from a JSON or YAML file, selected by
// extension.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase library: %w", err)
	}

	categories := make(map[string][]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &categories)
	default:
		err = yaml.Unmarshal(data, &categories)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse phrase library %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewLibrary(name, categories), nil
}

// Name returns the library's name, taken from its file name when loaded.
func (l *Library) Name() string {
	return l.name
}

// Phrases returns the phrases for category.
func (l *Library) Phrases(category string) ([]string, error) {
	phrases, ok := l.categories[category]
	if !ok {
		return nil, fmt.Errorf("%w %q in %s", ErrUnknownCategory, category, l.name)
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("phrase category %q in %s is empty", category, l.name)
	}
	return phrases, nil
}

// Categories returns the defined category names, sorted.
func (l *Library) Categories() []string {
	out := make([]string, 0, len(l.categories))
	for c := range l.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Require checks that every key resolves to a non-empty phrase list and
// reports all the keys that do not.
func (l *Library) Require(keys ...string) error {
	var problems []string
	for _, k := range keys {
		if _, err := l.Phrases(k); err != nil {
			problems = append(problems, fmt.Sprintf("%q", k))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s is missing phrase categories: %s (defined: %s)",
			l.name, strings.Join(problems, ", "), strings.Join(l.Categories(), ", "))
	}
	return nil
}
