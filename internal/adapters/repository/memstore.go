package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/pkg/metrics"
)

const (
	defaultPageSize = 20
	defaultMaxPage  = 100
)

// MemoryStore keeps the catalog and builds in process memory.
// Every read returns a copy, so callers never share state with the store.
type MemoryStore struct {
	mu         sync.RWMutex
	components map[string]model.Component
	builds     map[string]*model.Build

	defaultPageSize int
	maxPageSize     int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		components:      make(map[string]model.Component),
		builds:          make(map[string]*model.Build),
		defaultPageSize: defaultPageSize,
		maxPageSize:     defaultMaxPage,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}

	return s
}

// CreateComponent implements ComponentStore.CreateComponent.
func (s *MemoryStore) CreateComponent(ctx context.Context, c model.Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.components[c.ID]; ok {
		return fmt.Errorf("component %q: %w", c.ID, ErrAlreadyExists)
	}
	s.components[c.ID] = c.Clone()
	return nil
}

// UpdateComponent implements ComponentStore.UpdateComponent.
func (s *MemoryStore) UpdateComponent(ctx context.Context, c model.Component) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.components[c.ID]; !ok {
		return fmt.Errorf("component %q: %w", c.ID, ErrNotFound)
	}
	s.components[c.ID] = c.Clone()
	return nil
}

// GetComponent implements ComponentStore.GetComponent.
func (s *MemoryStore) GetComponent(ctx context.Context, id string) (model.Component, error) {
	if err := ctx.Err(); err != nil {
		return model.Component{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.components[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Component{}, fmt.Errorf("component %q: %w", id, ErrNotFound)
	}
	return c.Clone(), nil
}

// DeleteComponent implements ComponentStore.DeleteComponent.
func (s *MemoryStore) DeleteComponent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.components[id]; !ok {
		return fmt.Errorf("component %q: %w", id, ErrNotFound)
	}
	delete(s.components, id)
	return nil
}

// ListComponents implements ComponentStore.ListComponents.
func (s *MemoryStore) ListComponents(ctx context.Context, q Query) (Page, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	field, ok := ParseSortField(string(q.Sort))
	if !ok {
		return Page{}, fmt.Errorf("sort %q: %w", q.Sort, ErrInvalidQuery)
	}
	if q.Page < 0 || q.Limit < 0 {
		metrics.RecordErrorByComponent("repository", "invalid_page")
		return Page{}, fmt.Errorf("page %d limit %d: %w", q.Page, q.Limit, ErrInvalidQuery)
	}
	page, limit := q.Page, q.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	s.mu.RLock()
	matched := make([]model.Component, 0, len(s.components))
	for _, c := range s.components {
		if q.Filter.Matches(c) {
			matched = append(matched, c)
		}
	}
	s.mu.RUnlock()

	sortComponents(matched, field, ascending(field, q.Ascending))

	out := Page{Items: []model.Component{}, Total: len(matched), Page: page, Limit: limit}
	// Compare before multiplying so huge page numbers cannot overflow.
	if page-1 > len(matched)/limit {
		return out, nil
	}
	from := (page - 1) * limit
	if from >= len(matched) {
		return out, nil
	}
	to := from + limit
	if to > len(matched) {
		to = len(matched)
	}
	for _, c := range matched[from:to] {
		out.Items = append(out.Items, c.Clone())
	}
	return out, nil
}

// CountByCategory implements ComponentStore.CountByCategory.
func (s *MemoryStore) CountByCategory(_ context.Context) map[model.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.Category]int)
	for _, c := range s.components {
		out[c.Category]++
	}
	return out
}

// SaveBuild implements BuildStore.SaveBuild.
func (s *MemoryStore) SaveBuild(ctx context.Context, b *model.Build) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b == nil || b.ID == "" {
		return fmt.Errorf("build without id: %w", ErrInvalidQuery)
	}

	s.mu.Lock()
	s.builds[b.ID] = b.Clone()
	s.mu.Unlock()
	return nil
}

// GetBuild implements BuildStore.GetBuild.
func (s *MemoryStore) GetBuild(ctx context.Context, id string) (*model.Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.builds[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, fmt.Errorf("build %q: %w", id, ErrNotFound)
	}
	return b.Clone(), nil
}

// UpdateBuild implements BuildStore.UpdateBuild.
func (s *MemoryStore) UpdateBuild(ctx context.Context, id string, fn func(*model.Build) (bool, error)) (*model.Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.builds[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, fmt.Errorf("build %q: %w", id, ErrNotFound)
	}
	b := stored.Clone()
	changed, err := fn(b)
	if err != nil {
		return nil, err
	}
	if changed {
		s.builds[id] = b.Clone()
	}
	return b, nil
}

// DeleteBuild implements BuildStore.DeleteBuild.
func (s *MemoryStore) DeleteBuild(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.builds[id]; !ok {
		return fmt.Errorf("build %q: %w", id, ErrNotFound)
	}
	delete(s.builds, id)
	return nil
}

// ListBuilds implements BuildStore.ListBuilds.
func (s *MemoryStore) ListBuilds(ctx context.Context) ([]*model.Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*model.Build, 0, len(s.builds))
	for _, b := range s.builds {
		out = append(out, b.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CountBuilds implements BuildStore.CountBuilds.
func (s *MemoryStore) CountBuilds(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.builds)
}

func ascending(field SortField, override *bool) bool {
	if override != nil {
		return *override
	}
	return field == SortPrice
}

// sortComponents orders by field, then by id ascending so pages are stable.
func sortComponents(cs []model.Component, field SortField, asc bool) {
	key := func(c model.Component) float64 {
		switch field {
		case SortPrice:
			return c.Price
		case SortRating:
			return c.Rating
		default:
			return c.PerformanceScore()
		}
	}
	sort.Slice(cs, func(i, j int) bool {
		a, b := key(cs[i]), key(cs[j])
		if a != b {
			if asc {
				return a < b
			}
			return a > b
		}
		return strings.Compare(cs[i].ID, cs[j].ID) < 0
	})
}
