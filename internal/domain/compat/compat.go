// Package compat evaluates pairwise compatibility rules over a component
// selection. Violations are warnings: they never block a build.
package compat

import (
	"fmt"

	"github.com/okian/pcforge/internal/domain/model"
)

// DefaultPowerHeadroom is the share of PSU wattage a GPU may draw.
const DefaultPowerHeadroom = 0.6

// Rule names.
const (
	RuleSocket = "cpu_motherboard_socket"
	RuleRAM    = "ram_motherboard_type"
	RulePower  = "gpu_psu_power"
)

// Rule is a check over two categories. Test is only called when both are
// selected and returns a message when the pair is incompatible.
type Rule struct {
	Name  string
	Left  model.Category
	Right model.Category
	Test  func(left, right model.Component) (string, bool)
}

// involves reports whether the rule reads category c.
func (r Rule) involves(c model.Category) bool {
	return r.Left == c || r.Right == c
}

// Violation is a failed rule.
type Violation struct {
	Rule       string           `json:"rule"`
	Categories []model.Category `json:"categories"`
	Message    string           `json:"message"`
}

// Option applies a configuration option to the Checker.
type Option func(*Checker)

// WithPowerHeadroom sets the GPU/PSU ratio. Non-positive values are ignored.
func WithPowerHeadroom(h float64) Option {
	return func(c *Checker) {
		if h > 0 {
			c.headroom = h
		}
	}
}

// WithRule appends a rule after the built-in ones.
func WithRule(r Rule) Option {
	return func(c *Checker) {
		if r.Name != "" && r.Test != nil {
			c.extra = append(c.extra, r)
		}
	}
}

// Checker holds an ordered rule list. It has no mutable state after New.
type Checker struct {
	headroom float64
	extra    []Rule
	rules    []Rule
}

// New creates a Checker with the socket, RAM type and power rules.
func New(opts ...Option) *Checker {
	c := &Checker{headroom: DefaultPowerHeadroom}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.rules = append([]Rule{
		socketRule(),
		ramRule(),
		powerRule(c.headroom),
	}, c.extra...)
	c.extra = nil

	return c
}

// Headroom returns the configured GPU/PSU ratio.
func (c *Checker) Headroom() float64 {
	return c.headroom
}

// Rules returns the rule names in evaluation order.
func (c *Checker) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Violations evaluates every rule against sel in order.
func (c *Checker) Violations(sel model.Selection) []Violation {
	out := []Violation{}
	for _, r := range c.rules {
		if v, ok := evaluate(r, sel); ok {
			out = append(out, v)
		}
	}
	return out
}

// Check returns the violation messages for sel. The result is empty, not
// nil, when sel is compatible.
func (c *Checker) Check(sel model.Selection) []string {
	vs := c.Violations(sel)
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

// Compatible reports whether candidate would pass every rule that involves
// its category, with candidate taking that category's slot in sel.
func (c *Checker) Compatible(candidate model.Component, sel model.Selection) bool {
	next := sel.With(candidate)
	for _, r := range c.rules {
		if !r.involves(candidate.Category) {
			continue
		}
		if _, failed := evaluate(r, next); failed {
			return false
		}
	}
	return true
}

func evaluate(r Rule, sel model.Selection) (Violation, bool) {
	left, ok := sel.Get(r.Left)
	if !ok {
		return Violation{}, false
	}
	right, ok := sel.Get(r.Right)
	if !ok {
		return Violation{}, false
	}
	msg, bad := r.Test(left, right)
	if !bad {
		return Violation{}, false
	}
	return Violation{
		Rule:       r.Name,
		Categories: []model.Category{r.Left, r.Right},
		Message:    msg,
	}, true
}

func socketRule() Rule {
	return Rule{
		Name:  RuleSocket,
		Left:  model.CategoryCPU,
		Right: model.CategoryMotherboard,
		Test: func(cpu, board model.Component) (string, bool) {
			a, b := cpu.Specs.Text("socket"), board.Specs.Text("socket")
			if a == b {
				return "", false
			}
			return fmt.Sprintf("CPU socket (%s) is not compatible with motherboard socket (%s)", a, b), true
		},
	}
}

func ramRule() Rule {
	return Rule{
		Name:  RuleRAM,
		Left:  model.CategoryRAM,
		Right: model.CategoryMotherboard,
		Test: func(ram, board model.Component) (string, bool) {
			a, b := ram.Specs.Text("type"), board.Specs.Text("ramType")
			if a == b {
				return "", false
			}
			return fmt.Sprintf("RAM type (%s) is not compatible with motherboard (%s)", a, b), true
		},
	}
}

func powerRule(headroom float64) Rule {
	return Rule{
		Name:  RulePower,
		Left:  model.CategoryGPU,
		Right: model.CategoryPowerSupply,
		Test: func(gpu, psu model.Component) (string, bool) {
			draw, supply := gpu.Specs.LeadingInt("powerRequirement"), psu.Specs.LeadingInt("wattage")
			if draw <= 0 || supply <= 0 {
				return "", false
			}
			if float64(draw) <= headroom*float64(supply) {
				return "", false
			}
			return fmt.Sprintf("GPU power requirement (%dW) may be too high for the selected power supply (%dW)", draw, supply), true
		},
	}
}
