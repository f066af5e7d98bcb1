package model

import (
	"encoding/json"
	"time"
)

// DefaultRequiredCategories are the categories a build needs before it is
// considered complete.
var DefaultRequiredCategories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryStorage,
	CategoryPowerSupply,
}

// Build is a named collection of at most one component per category.
// It is not safe for concurrent mutation; stores serialize access.
type Build struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	components map[Category]Component
	totalPrice float64
}

// NewBuild creates an empty build.
func NewBuild(id, name string) *Build {
	now := time.Now().UTC()
	return &Build{
		ID:         id,
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
		components: make(map[Category]Component),
	}
}

// FromBuild creates a new build that starts with a copy of prior's
// components. A nil prior yields an empty build.
func FromBuild(id, name string, prior *Build) *Build {
	b := NewBuild(id, name)
	if prior == nil {
		return b
	}
	for cat, c := range prior.components {
		b.components[cat] = c.Clone()
	}
	b.recompute()
	return b
}

// Add selects c for its category, replacing any component already there.
// The replaced component is returned when one existed.
func (b *Build) Add(c Component) (Component, bool) {
	b.ensure()
	prev, replaced := b.components[c.Category]
	b.components[c.Category] = c.Clone()
	b.touch()
	return prev, replaced
}

// Remove drops the component selected for category.
func (b *Build) Remove(category Category) (Component, bool) {
	prev, ok := b.components[category]
	if !ok {
		return Component{}, false
	}
	delete(b.components, category)
	b.touch()
	return prev, true
}

// Component returns the component selected for category.
func (b *Build) Component(category Category) (Component, bool) {
	c, ok := b.components[category]
	return c, ok
}

// Has reports whether a component with the given id is part of the build.
func (b *Build) Has(componentID string) bool {
	for _, c := range b.components {
		if c.ID == componentID {
			return true
		}
	}
	return false
}

// Len returns the number of selected categories.
func (b *Build) Len() int {
	return len(b.components)
}

// TotalPrice is the sum of the selected components' prices.
func (b *Build) TotalPrice() float64 {
	return b.totalPrice
}

// Components returns the selected components in display order.
func (b *Build) Components() []Component {
	out := make([]Component, 0, len(b.components))
	for _, cat := range categoryOrder {
		if c, ok := b.components[cat]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Selection returns a snapshot of the build suitable for the engine.
func (b *Build) Selection() Selection {
	out := make(Selection, len(b.components))
	for cat, c := range b.components {
		out[cat] = c.Clone()
	}
	return out
}

// Missing lists the required categories that have no selection, in the
// order given.
func (b *Build) Missing(required []Category) []Category {
	out := make([]Category, 0, len(required))
	for _, cat := range required {
		if _, ok := b.components[cat]; !ok {
			out = append(out, cat)
		}
	}
	return out
}

// Clone returns a deep copy of b.
func (b *Build) Clone() *Build {
	out := FromBuild(b.ID, b.Name, b)
	out.CreatedAt = b.CreatedAt
	out.UpdatedAt = b.UpdatedAt
	return out
}

// MarshalJSON renders the build with its components in display order.
func (b *Build) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string      `json:"id"`
		Name       string      `json:"name"`
		Components []Component `json:"components"`
		TotalPrice float64     `json:"total_price"`
		CreatedAt  time.Time   `json:"created_at"`
		UpdatedAt  time.Time   `json:"updated_at"`
	}{
		ID:         b.ID,
		Name:       b.Name,
		Components: b.Components(),
		TotalPrice: b.totalPrice,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	})
}

func (b *Build) ensure() {
	if b.components == nil {
		b.components = make(map[Category]Component)
	}
}

func (b *Build) touch() {
	b.UpdatedAt = time.Now().UTC()
	b.recompute()
}

// recompute sums prices in display order so totals are deterministic.
func (b *Build) recompute() {
	total := 0.0
	for _, cat := range categoryOrder {
		if c, ok := b.components[cat]; ok {
			total += c.Price
		}
	}
	b.totalPrice = total
}
