// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/pcforge/internal/domain/specs"
)

// Sentinel kinds for model errors.
var (
	ErrUnknownCategory   = errors.New("unknown component category")
	ErrInvalidComponent  = errors.New("invalid component")
	ErrCategoryImmutable = errors.New("component category is immutable")
)

// Category is the closed set of component kinds a build can hold.
type Category string

// Supported categories. PowerSupply is selectable in a build but has no
// purpose classifier or scorer.
const (
	CategoryCPU         Category = "CPU"
	CategoryMotherboard Category = "Motherboard"
	CategoryRAM         Category = "RAM"
	CategoryGPU         Category = "GPU"
	CategoryStorage     Category = "Storage"
	CategoryPowerSupply Category = "PowerSupply"
	CategoryKeyboard    Category = "Keyboard"
	CategoryMouse       Category = "Mouse"
)

// categoryOrder is the display order used wherever categories are listed.
var categoryOrder = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryGPU,
	CategoryStorage,
	CategoryPowerSupply,
	CategoryKeyboard,
	CategoryMouse,
}

// categoryAliases maps lower-cased names, including the REST resource names
// used by the mobile client, to categories.
var categoryAliases = map[string]Category{
	"cpu":          CategoryCPU,
	"motherboard":  CategoryMotherboard,
	"mainboard":    CategoryMotherboard,
	"ram":          CategoryRAM,
	"memory":       CategoryRAM,
	"gpu":          CategoryGPU,
	"storage":      CategoryStorage,
	"drive":        CategoryStorage,
	"powersupply":  CategoryPowerSupply,
	"power_supply": CategoryPowerSupply,
	"psu":          CategoryPowerSupply,
	"keyboard":     CategoryKeyboard,
	"mouse":        CategoryMouse,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	return c.index() >= 0
}

// UnmarshalText normalizes known aliases while decoding. Unknown names are
// kept verbatim so Validate can report them.
func (c *Category) UnmarshalText(text []byte) error {
	if parsed, err := ParseCategory(string(text)); err == nil {
		*c = parsed
		return nil
	}
	*c = Category(text)
	return nil
}

func (c Category) index() int {
	for i, known := range categoryOrder {
		if known == c {
			return i
		}
	}
	return -1
}

// Component is the unit of selection and compatibility checking.
type Component struct {
	ID            string      `json:"id" yaml:"id"`
	Category      Category    `json:"type" yaml:"type"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	Price         float64     `json:"price" yaml:"price"`
	Rating        float64     `json:"rating,omitempty" yaml:"rating,omitempty"`
	Image         string      `json:"image,omitempty" yaml:"image,omitempty"`
	Specs         specs.Specs `json:"specs" yaml:"specs"`
	Compatibility []string    `json:"compatibility" yaml:"compatibility"`
}

// Validate checks the catalog-level invariants of a component.
func (c Component) Validate() error {
	switch {
	case !c.Category.Valid():
		return fmt.Errorf("%w: %w: %q", ErrInvalidComponent, ErrUnknownCategory, c.Category)
	case strings.TrimSpace(c.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidComponent)
	case c.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidComponent)
	}
	return nil
}

// Purpose returns the derived purpose label, or "" if none was computed.
func (c Component) Purpose() string {
	return c.Specs.Text(specs.KeyPurpose)
}

// PerformanceScore returns the derived performance score, or 0.
func (c Component) PerformanceScore() float64 {
	return c.Specs.Number(specs.KeyPerformanceScore)
}

// Clone returns a copy that shares no mutable state with c.
func (c Component) Clone() Component {
	out := c
	out.Specs = c.Specs.Clone()
	if c.Compatibility != nil {
		out.Compatibility = append([]string(nil), c.Compatibility...)
	}
	return out
}

// Selection is an immutable snapshot of at most one component per category.
// Producers hand out copies; the engine never mutates it.
type Selection map[Category]Component

// Get returns the component selected for category.
func (s Selection) Get(category Category) (Component, bool) {
	c, ok := s[category]
	return c, ok
}

// Categories lists the selected categories in display order.
func (s Selection) Categories() []Category {
	out := make([]Category, 0, len(s))
	for _, c := range categoryOrder {
		if _, ok := s[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// With returns a copy of s with c selected for its category.
func (s Selection) With(c Component) Selection {
	out := make(Selection, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[c.Category] = c
	return out
}
