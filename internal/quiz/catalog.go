package quiz

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed dinosaurs.yaml
var catalogYAML []byte

// Dinosaur is one catalog entry.
type Dinosaur struct {
	Name   string `yaml:"name"`
	Image  string `yaml:"image"`
	Source string `yaml:"source"`
}

// Catalog is the pool of dinosaurs questions and wrong answers are drawn from.
type Catalog struct {
	Dinosaurs []Dinosaur `yaml:"dinosaurs"`
}

// ParseCatalog decodes a YAML catalog and rejects empty or duplicate names.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Dinosaurs))
	for i, d := range c.Dinosaurs {
		if d.Name == "" {
			return Catalog{}, fmt.Errorf("catalog entry %d: name is required", i)
		}
		if seen[d.Name] {
			return Catalog{}, fmt.Errorf("catalog entry %d: duplicate name %q", i, d.Name)
		}
		seen[d.Name] = true
	}
	return c, nil
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(err) // embedded data is covered by tests
	}
	return c
}

// Names returns every dinosaur name in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.Dinosaurs))
	for i, d := range c.Dinosaurs {
		names[i] = d.Name
	}
	return names
}

// Lookup finds an entry by name.
func (c Catalog) Lookup(name string) (Dinosaur, bool) {
	for _, d := range c.Dinosaurs {
		if d.Name == name {
			return d, true
		}
	}
	return Dinosaur{}, false
}

// Len returns the number of entries.
func (c Catalog) Len() int { return len(c.Dinosaurs) }
