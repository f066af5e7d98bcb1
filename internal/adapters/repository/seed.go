package repository

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/okian/pcforge/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML seed document: catalog components plus optional
// builds that reference them by id.
type Catalog struct {
	Components []model.Component `yaml:"components"`
	Builds     []SeedBuild       `yaml:"builds"`
}

// SeedBuild is a build entry of a Catalog.
type SeedBuild struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Components []string `yaml:"components"`
}

// LoadCatalog decodes and validates a seed document.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// LoadCatalogFile reads a seed document from path.
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	defer func() { _ = f.Close() }()
	return LoadCatalog(f)
}

// Validate checks ids are unique, components are well formed and builds
// reference known components with at most one per category.
func (c Catalog) Validate() error {
	byID := make(map[string]model.Component, len(c.Components))
	for i, comp := range c.Components {
		if comp.ID == "" {
			return fmt.Errorf("%w: component #%d has no id", ErrInvalidSeed, i)
		}
		if _, dup := byID[comp.ID]; dup {
			return fmt.Errorf("%w: duplicate component id %q", ErrInvalidSeed, comp.ID)
		}
		if err := comp.Validate(); err != nil {
			return fmt.Errorf("%w: component %q: %w", ErrInvalidSeed, comp.ID, err)
		}
		byID[comp.ID] = comp
	}

	builds := make(map[string]struct{}, len(c.Builds))
	for i, b := range c.Builds {
		if b.ID == "" {
			return fmt.Errorf("%w: build #%d has no id", ErrInvalidSeed, i)
		}
		if _, dup := builds[b.ID]; dup {
			return fmt.Errorf("%w: duplicate build id %q", ErrInvalidSeed, b.ID)
		}
		builds[b.ID] = struct{}{}

		seen := make(map[model.Category]string, len(b.Components))
		for _, id := range b.Components {
			comp, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: build %q references unknown component %q", ErrInvalidSeed, b.ID, id)
			}
			if prev, clash := seen[comp.Category]; clash {
				return fmt.Errorf("%w: build %q selects %s twice (%q, %q)", ErrInvalidSeed, b.ID, comp.Category, prev, id)
			}
			seen[comp.Category] = id
		}
	}
	return nil
}
