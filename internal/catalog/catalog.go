// Package catalog loads the hand-authored list of course sections that the
// topic index is built from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var defaultCatalog []byte

// Section describes one course step and where its solutions live in each
// collection. SecondaryKey may be empty when the secondary collection has no
// matching directory.
type Section struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Step         int      `yaml:"step" json:"step_number"`
	PrimaryKey   string   `yaml:"primary_key" json:"primary_key"`
	SecondaryKey string   `yaml:"secondary_key" json:"secondary_key,omitempty"`
	Subsections  []string `yaml:"subsections" json:"subsections"`
	Topics       []string `yaml:"topics" json:"topics"`
	SourceURL    string   `yaml:"source_url" json:"source_url,omitempty"`
}

// Catalog is the ordered list of course sections.
type Catalog struct {
	SourceURL string    `yaml:"source_url"`
	Sections  []Section `yaml:"sections"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or returns the compiled-in catalog when
// path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. Sections inherit the catalog
// source URL unless they set their own, and are returned ordered by step.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	for i := range c.Sections {
		if c.Sections[i].SourceURL == "" {
			c.Sections[i].SourceURL = c.SourceURL
		}
	}
	sort.SliceStable(c.Sections, func(i, j int) bool {
		return c.Sections[i].Step < c.Sections[j].Step
	})
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Sections) == 0 {
		return errors.New("catalog has no sections")
	}
	seen := make(map[string]struct{}, len(c.Sections))
	for i, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("catalog section %d: missing id", i)
		}
		if s.Title == "" {
			return fmt.Errorf("catalog section %s: missing title", s.ID)
		}
		if s.PrimaryKey == "" {
			return fmt.Errorf("catalog section %s: missing primary_key", s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("catalog section %s: duplicate id", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
