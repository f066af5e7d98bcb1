// Package repository defines the catalog and build store interfaces and an
// in-memory implementation.
package repository

import (
	"context"
	"strings"

	"github.com/okian/pcforge/internal/domain/model"
)

// SortField selects the key a component list is ordered by.
type SortField string

// Supported sort keys.
const (
	SortScore  SortField = "score"
	SortPrice  SortField = "price"
	SortRating SortField = "rating"
)

// ParseSortField resolves a client-supplied sort key. Empty means SortScore.
func ParseSortField(raw string) (SortField, bool) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return SortScore, true
	case SortScore, SortPrice, SortRating:
		return f, true
	default:
		return "", false
	}
}

// Filter narrows a component list. Zero fields match everything.
type Filter struct {
	Category model.Category
	// Purpose matches the derived purpose label, ignoring case.
	Purpose string
	// Query matches name or description substrings, ignoring case.
	Query    string
	MinPrice *float64
	MaxPrice *float64
	// Match is an extra predicate applied after the fields above.
	Match func(model.Component) bool
}

// Matches reports whether c passes every set field of f.
func (f Filter) Matches(c model.Component) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Purpose != "" && !strings.EqualFold(c.Purpose(), strings.TrimSpace(f.Purpose)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Description), q) {
			return false
		}
	}
	if f.MinPrice != nil && c.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && c.Price > *f.MaxPrice {
		return false
	}
	if f.Match != nil && !f.Match(c) {
		return false
	}
	return true
}

// Query describes one page of a component list.
type Query struct {
	Filter Filter
	Sort   SortField
	// Ascending flips the order. Score and rating sort descending by default,
	// price ascending.
	Ascending *bool
	// Page is 1-based; Limit 0 means the store default.
	Page  int
	Limit int
}

// Page is one slice of a list result.
type Page struct {
	Items []model.Component `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ComponentStore provides read/write access to the component catalog.
type ComponentStore interface {
	// CreateComponent stores a new component.
	// Returns ErrAlreadyExists if the id is taken.
	CreateComponent(ctx context.Context, c model.Component) error
	// UpdateComponent replaces a stored component.
	// Returns ErrNotFound if the id is unknown.
	UpdateComponent(ctx context.Context, c model.Component) error
	// GetComponent returns a copy of a stored component.
	GetComponent(ctx context.Context, id string) (model.Component, error)
	// DeleteComponent removes a component.
	DeleteComponent(ctx context.Context, id string) error
	// ListComponents returns one filtered, ordered page.
	ListComponents(ctx context.Context, q Query) (Page, error)
	// CountByCategory returns the number of components per category.
	CountByCategory(ctx context.Context) map[model.Category]int
}

// BuildStore provides read/write access to saved builds.
type BuildStore interface {
	// SaveBuild creates or replaces a build.
	SaveBuild(ctx context.Context, b *model.Build) error
	// GetBuild returns a copy of a stored build.
	GetBuild(ctx context.Context, id string) (*model.Build, error)
	// UpdateBuild applies fn to a copy of the build while holding the
	// store's write lock and stores the copy when fn reports a change.
	// fn must not call back into the store.
	UpdateBuild(ctx context.Context, id string, fn func(*model.Build) (bool, error)) (*model.Build, error)
	// DeleteBuild removes a build.
	DeleteBuild(ctx context.Context, id string) error
	// ListBuilds returns copies of all builds, newest first.
	ListBuilds(ctx context.Context) ([]*model.Build, error)
	// CountBuilds returns the number of stored builds.
	CountBuilds(ctx context.Context) int
}

// Store is the full persistence surface used by the service.
type Store interface {
	ComponentStore
	BuildStore
}
