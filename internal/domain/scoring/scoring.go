// Package scoring classifies components into usage-purpose labels and
// computes normalized performance scores from their raw specs.
//
// Every category is described by a Profile: an ordered rule table for the
// purpose label and a Scorer for the performance score. The Engine holds one
// profile per supported category and is stateless after construction, so a
// single instance may be shared across goroutines.
package scoring

import (
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

// Profile is the classification and scoring recipe for one category.
type Profile struct {
	Category   model.Category
	Classifier Classifier
	Scorer     Scorer
}

// Result contains the derived attributes of a component.
type Result struct {
	Category model.Category `json:"category"`
	Purpose  Purpose        `json:"purpose"`
	Score    float64        `json:"performance_score"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTables replaces the hardware lists the built-in profiles consult.
// Empty fields keep their defaults.
func WithTables(t Tables) Option {
	return func(e *Engine) {
		e.tables = t.withDefaults()
	}
}

// WithProfile installs p for its category, replacing any built-in profile.
func WithProfile(p Profile) Option {
	return func(e *Engine) {
		if p.Category != "" && p.Scorer != nil {
			e.overrides = append(e.overrides, p)
		}
	}
}

// Engine maps categories to their profiles.
type Engine struct {
	tables    Tables
	overrides []Profile
	profiles  map[model.Category]Profile
}

// New creates an Engine with the built-in profiles.
func New(opts ...Option) *Engine {
	e := &Engine{
		tables: DefaultTables().withDefaults(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(e)
	}

	builders := []func(Tables) Profile{
		cpuProfile,
		gpuProfile,
		motherboardProfile,
		ramProfile,
		storageProfile,
		keyboardProfile,
		mouseProfile,
	}
	e.profiles = make(map[model.Category]Profile, len(builders)+len(e.overrides))
	for _, build := range builders {
		p := build(e.tables)
		e.profiles[p.Category] = p
	}
	for _, p := range e.overrides {
		e.profiles[p.Category] = p
	}
	e.overrides = nil

	return e
}

// Supports reports whether category has a profile.
func (e *Engine) Supports(category model.Category) bool {
	_, ok := e.profiles[category]
	return ok
}

// Categories lists the supported categories in display order.
func (e *Engine) Categories() []model.Category {
	out := make([]model.Category, 0, len(e.profiles))
	for _, c := range model.Categories() {
		if e.Supports(c) {
			out = append(out, c)
		}
	}
	return out
}

// Tables returns a copy of the hardware lists in use.
func (e *Engine) Tables() Tables {
	return e.tables.withDefaults()
}

// Classify returns the purpose label for s. Unsupported categories yield "".
func (e *Engine) Classify(category model.Category, s specs.Specs) Purpose {
	p, ok := e.profiles[category]
	if !ok {
		return ""
	}
	return p.Classifier.Classify(s)
}

// Score returns the performance score for s. Unsupported categories yield 0.
func (e *Engine) Score(category model.Category, s specs.Specs) float64 {
	p, ok := e.profiles[category]
	if !ok {
		return 0
	}
	return p.Scorer.Score(s)
}

// Evaluate classifies and scores s in one call. It reports false when
// category has no profile.
func (e *Engine) Evaluate(category model.Category, s specs.Specs) (Result, bool) {
	p, ok := e.profiles[category]
	if !ok {
		return Result{Category: category}, false
	}
	return Result{
		Category: category,
		Purpose:  p.Classifier.Classify(s),
		Score:    p.Scorer.Score(s),
	}, true
}

// Annotate returns a copy of s with the derived purpose and performance
// score attached. Unsupported categories get an unmodified copy.
func (e *Engine) Annotate(category model.Category, s specs.Specs) specs.Specs {
	out := s.Clone()
	res, ok := e.Evaluate(category, s)
	if !ok {
		return out
	}
	out[specs.KeyPurpose] = string(res.Purpose)
	out[specs.KeyPerformanceScore] = res.Score
	return out
}
