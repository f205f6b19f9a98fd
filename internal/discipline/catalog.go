// Package discipline loads community metadata profiles from a TOML catalog.
// A profile names the elements a research community expects on its records;
// the reusable indicators check term sets against the active profile.
package discipline

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"fairmeter/internal/vocab"
)

// Profile is one community's expectations.
type Profile struct {
	Name       string   `toml:"name"`
	Provenance []string `toml:"provenance"`
	Standards  []string `toml:"standards"`
}

// Catalog holds the loaded profiles keyed by lowercase name.
type Catalog struct {
	profiles map[string]Profile
}

type catalogFile struct {
	Profiles []Profile `toml:"profile"`
}

// Load reads a catalog from a TOML file. A missing path is not an error:
// it yields an empty catalog, which callers treat as "no community profile
// configured".
func Load(path string) (*Catalog, error) {
	if path == "" {
		return &Catalog{profiles: map[string]Profile{}}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{profiles: map[string]Profile{}}, nil
		}
		return nil, fmt.Errorf("read discipline catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog TOML.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse discipline catalog: %w", err)
	}
	c := &Catalog{profiles: make(map[string]Profile, len(file.Profiles))}
	for _, p := range file.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("parse discipline catalog: profile without name")
		}
		c.profiles[strings.ToLower(p.Name)] = p
	}
	return c, nil
}

// Empty reports whether no profiles were loaded.
func (c *Catalog) Empty() bool { return c == nil || len(c.profiles) == 0 }

// Names lists the loaded profile names, sorted.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.profiles))
	for n := range c.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Profile looks up one profile by name, case-insensitively.
func (c *Catalog) Profile(name string) (Profile, bool) {
	if c == nil {
		return Profile{}, false
	}
	p, ok := c.profiles[strings.ToLower(name)]
	return p, ok
}

// ProvenanceVocabulary builds the checkable vocabulary for a profile's
// provenance elements.
func (p Profile) ProvenanceVocabulary() vocab.Vocabulary {
	return elementVocabulary(p.Provenance)
}

// StandardsVocabulary builds the checkable vocabulary for a profile's
// community standard elements.
func (p Profile) StandardsVocabulary() vocab.Vocabulary {
	return elementVocabulary(p.Standards)
}

func elementVocabulary(elements []string) vocab.Vocabulary {
	v := make(vocab.Vocabulary, 0, len(elements))
	for _, e := range elements {
		v = append(v, vocab.Requirement{Element: e})
	}
	return v
}
