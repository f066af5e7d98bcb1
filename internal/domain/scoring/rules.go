package scoring

import (
	"math"

	"github.com/okian/pcforge/internal/domain/specs"
)

// Purpose is a short usage-purpose label.
type Purpose string

// Purpose labels produced by the built-in profiles.
const (
	PurposeGaming         Purpose = "Gaming"
	PurposeOffice         Purpose = "Office"
	PurposeDesign         Purpose = "Design"
	PurposeGeneral        Purpose = "General"
	PurposeStorage        Purpose = "Storage"
	PurposeHighEndGaming  Purpose = "High-End Gaming"
	PurposeWorkstation    Purpose = "Workstation"
	PurposeBudgetGaming   Purpose = "Budget Gaming"
	PurposeMidRangeGaming Purpose = "Mid-Range Gaming"
	PurposePremiumGaming  Purpose = "Premium Gaming"
	PurposeOfficeBudget   Purpose = "Office/Budget"
	PurposeCompact        Purpose = "Compact"
	PurposePortable       Purpose = "Portable"
)

// Predicate tests a spec mapping. Predicates must be total.
type Predicate func(s specs.Specs) bool

// Rule pairs a label with the condition that selects it.
type Rule struct {
	Label Purpose
	When  Predicate
}

// Classifier evaluates rules top to bottom; the first match wins and
// Default is returned when none match.
type Classifier struct {
	Rules   []Rule
	Default Purpose
}

// Classify returns the label of the first matching rule.
func (c Classifier) Classify(s specs.Specs) Purpose {
	for _, r := range c.Rules {
		if r.When != nil && r.When(s) {
			return r.Label
		}
	}
	return c.Default
}

// All matches when every predicate matches.
func All(preds ...Predicate) Predicate {
	return func(s specs.Specs) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches.
func Any(preds ...Predicate) Predicate {
	return func(s specs.Specs) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// AtLeast matches when the numeric value of key is >= min.
func AtLeast(key string, min float64) Predicate {
	return func(s specs.Specs) bool { return s.Number(key) >= min }
}

// AtMost matches when the numeric value of key is <= max.
func AtMost(key string, max float64) Predicate {
	return func(s specs.Specs) bool { return s.Number(key) <= max }
}

// Above matches when the numeric value of key is > min.
func Above(key string, min float64) Predicate {
	return func(s specs.Specs) bool { return s.Number(key) > min }
}

// Contains matches when the text of key contains any needle, ignoring case.
func Contains(key string, needles ...string) Predicate {
	return func(s specs.Specs) bool { return s.ContainsAny(key, needles) }
}

// OneOf matches when the text of key equals one of options, ignoring case.
func OneOf(key string, options ...string) Predicate {
	return func(s specs.Specs) bool { return s.OneOf(key, options) }
}

// IsSet matches when the boolean flag key is true.
func IsSet(key string) Predicate {
	return func(s specs.Specs) bool { return s.Flag(key) }
}

// Scorer computes a non-negative performance score from a spec mapping.
type Scorer interface {
	Score(s specs.Specs) float64
}

// Value extracts a normalized number from a spec mapping.
type Value func(s specs.Specs) float64

// Term is one weighted input of a WeightedSum.
type Term struct {
	Name   string
	Weight float64
	Value  Value
}

// WeightedSum scores as Scale * Σ(weight * value), capped at Ceiling when
// Ceiling is positive.
type WeightedSum struct {
	Name    string
	Scale   float64
	Terms   []Term
	Ceiling float64
}

// Score implements Scorer.
func (w WeightedSum) Score(s specs.Specs) float64 {
	sum := 0.0
	for _, t := range w.Terms {
		sum += t.Weight * t.Value(s)
	}
	raw := w.Scale * sum
	if w.Ceiling > 0 {
		raw = math.Min(raw, w.Ceiling)
	}
	return finalize(raw)
}

// ScoreFunc adapts a plain formula to Scorer.
type ScoreFunc func(s specs.Specs) float64

// Score implements Scorer.
func (f ScoreFunc) Score(s specs.Specs) float64 {
	return finalize(f(s))
}

// Ratio normalizes the numeric value of key against a reference value.
func Ratio(key string, reference float64) Value {
	return func(s specs.Specs) float64 { return s.Number(key) / reference }
}

// finalize rounds to two decimals; NaN, Inf and negatives become 0.
func finalize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return math.Round(x*100) / 100
}
