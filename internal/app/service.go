// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pcforge/internal/adapters/repository"
	"github.com/okian/pcforge/internal/domain/compat"
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/scoring"
	"github.com/okian/pcforge/internal/domain/specs"
	"github.com/okian/pcforge/pkg/logger"
	"github.com/okian/pcforge/pkg/metrics"
)

// Build mutation names reported to metrics.
const (
	opCreate = "create"
	opAdd    = "add"
	opRemove = "remove"
	opDelete = "delete"
)

// CheckResult is the outcome of a compatibility check.
type CheckResult struct {
	Compatible bool               `json:"compatible"`
	Issues     []string           `json:"issues"`
	Violations []compat.Violation `json:"violations"`
}

// BuildReport is a build together with everything derived from it.
type BuildReport struct {
	Build      *model.Build       `json:"build"`
	TotalPrice float64            `json:"total_price"`
	Compatible bool               `json:"compatible"`
	Issues     []string           `json:"issues"`
	Violations []compat.Violation `json:"violations"`
	Missing    []model.Category   `json:"missing"`
	Complete   bool               `json:"complete"`
}

// Service glues the catalog store to the scoring engine and the
// compatibility checker.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	engine  *scoring.Engine
	checker *compat.Checker

	// Configuration
	seedFile string
	required []model.Category
	newID    func() string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine replaces the default scoring engine.
func WithEngine(e *scoring.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithChecker replaces the default compatibility checker.
func WithChecker(c *compat.Checker) Option {
	return func(s *Service) {
		if c != nil {
			s.checker = c
		}
	}
}

// WithSeedFile loads the catalog at path on Start.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = strings.TrimSpace(path)
	}
}

// WithRequiredCategories sets the categories a complete build needs.
func WithRequiredCategories(categories []model.Category) Option {
	return func(s *Service) {
		if categories != nil {
			s.required = append([]model.Category(nil), categories...)
		}
	}
}

// WithIDGenerator overrides how ids are minted for new components and builds.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:    repository.NewMemoryStore(),
		engine:   scoring.New(),
		checker:  compat.New(),
		required: append([]model.Category(nil), model.DefaultRequiredCategories...),
		newID:    uuid.NewString,
		logger:   nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the seed catalog, if any, and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting catalog service...")

	if s.seedFile != "" {
		if err := s.seed(ctx); err != nil {
			s.logger.Error(ctx, "failed to load seed catalog",
				logger.String("file", s.seedFile),
				logger.Error(err),
			)
			return err
		}
	}

	s.started = true
	s.refreshGauges(ctx)

	s.logger.Info(ctx, "catalog service started",
		logger.Int("components", s.countComponents(ctx)),
		logger.Int("builds", s.store.CountBuilds(ctx)),
		logger.Float64("powerHeadroom", s.checker.Headroom()),
	)

	return nil
}

// Stop marks the service stopped. The catalog stays in memory.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping catalog service...")
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

func (s *Service) seed(ctx context.Context) error {
	catalog, err := repository.LoadCatalogFile(s.seedFile)
	if err != nil {
		return err
	}

	byID := make(map[string]model.Component, len(catalog.Components))
	for _, c := range catalog.Components {
		c = s.derive(c)
		if err := s.store.CreateComponent(ctx, c); err != nil {
			return fmt.Errorf("seed component %q: %w", c.ID, err)
		}
		byID[c.ID] = c
	}

	for _, sb := range catalog.Builds {
		b := model.NewBuild(sb.ID, sb.Name)
		for _, id := range sb.Components {
			b.Add(byID[id])
		}
		if err := s.store.SaveBuild(ctx, b); err != nil {
			return fmt.Errorf("seed build %q: %w", sb.ID, err)
		}
	}

	s.logger.Info(ctx, "seed catalog loaded",
		logger.String("file", s.seedFile),
		logger.Int("components", len(catalog.Components)),
		logger.Int("builds", len(catalog.Builds)),
	)
	return nil
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// Engine returns the scoring engine in use.
func (s *Service) Engine() *scoring.Engine {
	return s.engine
}

// Checker returns the compatibility checker in use.
func (s *Service) Checker() *compat.Checker {
	return s.checker
}

// RequiredCategories returns the categories a complete build needs.
func (s *Service) RequiredCategories() []model.Category {
	return append([]model.Category(nil), s.required...)
}

// Evaluate classifies and scores raw specs. It reports false for categories
// without a profile.
func (s *Service) Evaluate(ctx context.Context, category model.Category, in specs.Specs) (scoring.Result, bool) {
	start := time.Now()
	res, ok := s.engine.Evaluate(category, in)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Microseconds()) / 1000)
	if ok {
		metrics.RecordEvaluation(string(category), string(res.Purpose), res.Score)
	}
	s.log().Debug(ctx, "evaluated specs",
		logger.String("category", string(category)),
		logger.String("purpose", string(res.Purpose)),
		logger.Float64("score", res.Score),
		logger.Bool("supported", ok),
	)
	return res, ok
}

// CheckSelection runs every compatibility rule over sel.
func (s *Service) CheckSelection(ctx context.Context, sel model.Selection) CheckResult {
	violations := s.checker.Violations(sel)
	rules := make([]string, 0, len(violations))
	issues := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
		issues = append(issues, v.Message)
	}
	metrics.RecordCompatibilityCheck(rules...)

	if len(violations) > 0 {
		s.log().Debug(ctx, "selection has compatibility issues",
			logger.Int("issues", len(violations)),
			logger.Any("rules", rules),
		)
	}
	return CheckResult{
		Compatible: len(violations) == 0,
		Issues:     issues,
		Violations: violations,
	}
}

// derive recomputes purpose and performance_score. The listed price stands
// in for a missing price spec.
func (s *Service) derive(c model.Component) model.Component {
	out := c.Clone()
	if out.Specs == nil {
		out.Specs = specs.Specs{}
	}
	delete(out.Specs, specs.KeyPurpose)
	delete(out.Specs, specs.KeyPerformanceScore)

	in := out.Specs.Clone()
	if !in.Has("price") {
		in["price"] = c.Price
	}
	res, ok := s.engine.Evaluate(c.Category, in)
	if !ok {
		return out
	}
	out.Specs[specs.KeyPurpose] = string(res.Purpose)
	out.Specs[specs.KeyPerformanceScore] = res.Score
	metrics.RecordEvaluation(string(c.Category), string(res.Purpose), res.Score)
	return out
}

// CreateComponent validates c, computes its derived attributes and stores it.
// An empty id is replaced with a fresh one.
func (s *Service) CreateComponent(ctx context.Context, c model.Component) (model.Component, error) {
	if err := s.ready(); err != nil {
		return model.Component{}, err
	}
	if err := c.Validate(); err != nil {
		return model.Component{}, err
	}
	if strings.TrimSpace(c.ID) == "" {
		c.ID = s.newID()
	}

	c = s.derive(c)
	if err := s.store.CreateComponent(ctx, c); err != nil {
		return model.Component{}, err
	}
	s.refreshGauges(ctx)

	s.log().Info(ctx, "component created",
		logger.String("id", c.ID),
		logger.String("category", string(c.Category)),
		logger.String("purpose", c.Purpose()),
	)
	return c, nil
}

// UpdateComponent replaces a stored component and recomputes its derived
// attributes. The category cannot change.
func (s *Service) UpdateComponent(ctx context.Context, c model.Component) (model.Component, error) {
	if err := s.ready(); err != nil {
		return model.Component{}, err
	}
	current, err := s.store.GetComponent(ctx, c.ID)
	if err != nil {
		return model.Component{}, err
	}
	if c.Category == "" {
		c.Category = current.Category
	}
	if c.Category != current.Category {
		return model.Component{}, fmt.Errorf("%w: %s -> %s", model.ErrCategoryImmutable, current.Category, c.Category)
	}
	if err := c.Validate(); err != nil {
		return model.Component{}, err
	}

	c = s.derive(c)
	if err := s.store.UpdateComponent(ctx, c); err != nil {
		return model.Component{}, err
	}

	s.log().Info(ctx, "component updated",
		logger.String("id", c.ID),
		logger.String("purpose", c.Purpose()),
	)
	return c, nil
}

// GetComponent returns the component with the given id.
func (s *Service) GetComponent(ctx context.Context, id string) (model.Component, error) {
	if err := s.ready(); err != nil {
		return model.Component{}, err
	}
	return s.store.GetComponent(ctx, id)
}

// DeleteComponent removes a component from the catalog. Saved builds keep
// their own copies.
func (s *Service) DeleteComponent(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteComponent(ctx, id); err != nil {
		return err
	}
	s.refreshGauges(ctx)
	s.log().Info(ctx, "component deleted", logger.String("id", id))
	return nil
}

// ListComponents returns one page of the catalog. A non-empty compatibleWith
// keeps only components that raise no issue against that build.
func (s *Service) ListComponents(ctx context.Context, q repository.Query, compatibleWith string) (repository.Page, error) {
	if err := s.ready(); err != nil {
		return repository.Page{}, err
	}
	if compatibleWith != "" {
		b, err := s.store.GetBuild(ctx, compatibleWith)
		if err != nil {
			return repository.Page{}, err
		}
		sel := b.Selection()
		extra := q.Filter.Match
		q.Filter.Match = func(c model.Component) bool {
			if extra != nil && !extra(c) {
				return false
			}
			return s.checker.Compatible(c, sel)
		}
	}
	return s.store.ListComponents(ctx, q)
}

// CreateBuild creates a build, optionally starting from a copy of another
// build's components.
func (s *Service) CreateBuild(ctx context.Context, name, fromID string) (BuildReport, error) {
	if err := s.ready(); err != nil {
		return BuildReport{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return BuildReport{}, fmt.Errorf("%w: build name is required", ErrInvalidInput)
	}

	var prior *model.Build
	if fromID != "" {
		p, err := s.store.GetBuild(ctx, fromID)
		if err != nil {
			return BuildReport{}, err
		}
		prior = p
	}

	b := model.FromBuild(s.newID(), name, prior)
	if err := s.store.SaveBuild(ctx, b); err != nil {
		return BuildReport{}, err
	}
	s.buildMutated(ctx, opCreate, b.ID)
	return s.report(ctx, b), nil
}

// GetBuild returns the report for a build.
func (s *Service) GetBuild(ctx context.Context, id string) (BuildReport, error) {
	if err := s.ready(); err != nil {
		return BuildReport{}, err
	}
	b, err := s.store.GetBuild(ctx, id)
	if err != nil {
		return BuildReport{}, err
	}
	return s.report(ctx, b), nil
}

// ListBuilds returns every build, newest first.
func (s *Service) ListBuilds(ctx context.Context) ([]*model.Build, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ListBuilds(ctx)
}

// DeleteBuild removes a build.
func (s *Service) DeleteBuild(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.DeleteBuild(ctx, id); err != nil {
		return err
	}
	s.buildMutated(ctx, opDelete, id)
	return nil
}

// AddToBuild selects a catalog component for a build, replacing whatever
// was selected for its category. Compatibility issues are reported, never
// refused.
func (s *Service) AddToBuild(ctx context.Context, buildID, componentID string) (BuildReport, error) {
	if err := s.ready(); err != nil {
		return BuildReport{}, err
	}
	c, err := s.store.GetComponent(ctx, componentID)
	if err != nil {
		return BuildReport{}, err
	}

	b, err := s.store.UpdateBuild(ctx, buildID, func(b *model.Build) (bool, error) {
		if prev, replaced := b.Add(c); replaced {
			s.log().Debug(ctx, "component replaced in build",
				logger.String("build", b.ID),
				logger.String("previous", prev.ID),
				logger.String("component", c.ID),
			)
		}
		return true, nil
	})
	if err != nil {
		return BuildReport{}, err
	}
	s.buildMutated(ctx, opAdd, b.ID)
	return s.report(ctx, b), nil
}

// RemoveFromBuild drops the component selected for category. Removing an
// empty slot is not an error.
func (s *Service) RemoveFromBuild(ctx context.Context, buildID string, category model.Category) (BuildReport, error) {
	if err := s.ready(); err != nil {
		return BuildReport{}, err
	}
	var removed bool
	b, err := s.store.UpdateBuild(ctx, buildID, func(b *model.Build) (bool, error) {
		_, removed = b.Remove(category)
		return removed, nil
	})
	if err != nil {
		return BuildReport{}, err
	}
	if removed {
		s.buildMutated(ctx, opRemove, b.ID)
	}
	return s.report(ctx, b), nil
}

func (s *Service) report(ctx context.Context, b *model.Build) BuildReport {
	check := s.CheckSelection(ctx, b.Selection())
	missing := b.Missing(s.required)
	return BuildReport{
		Build:      b,
		TotalPrice: b.TotalPrice(),
		Compatible: check.Compatible,
		Issues:     check.Issues,
		Violations: check.Violations,
		Missing:    missing,
		Complete:   len(missing) == 0,
	}
}

func (s *Service) buildMutated(ctx context.Context, op, id string) {
	metrics.RecordBuildMutation(op)
	metrics.UpdateBuildCount(s.store.CountBuilds(ctx))
	s.log().Debug(ctx, "build mutated",
		logger.String("operation", op),
		logger.String("build", id),
	)
}

func (s *Service) refreshGauges(ctx context.Context) {
	counts := s.store.CountByCategory(ctx)
	for _, cat := range model.Categories() {
		metrics.UpdateCatalogSize(string(cat), counts[cat])
	}
	metrics.UpdateBuildCount(s.store.CountBuilds(ctx))
}

func (s *Service) countComponents(ctx context.Context) int {
	total := 0
	for _, n := range s.store.CountByCategory(ctx) {
		total += n
	}
	return total
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":            s.started,
		"powerHeadroom":      s.checker.Headroom(),
		"rules":              s.checker.Rules(),
		"scoredCategories":   len(s.engine.Categories()),
		"requiredCategories": len(s.required),
	}

	if s.started {
		counts := s.store.CountByCategory(ctx)
		byCategory := make(map[string]int, len(counts))
		for cat, n := range counts {
			byCategory[string(cat)] = n
		}
		stats["components"] = s.countComponents(ctx)
		stats["componentsByCategory"] = byCategory
		stats["builds"] = s.store.CountBuilds(ctx)
	}

	return stats
}
