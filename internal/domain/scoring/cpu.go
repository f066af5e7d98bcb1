package scoring

import (
	"strings"

	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

// Flat bonuses for integrated graphics.
const (
	premiumGraphicsBonus = 5
	midTierGraphicsBonus = 2
	smtBonus             = 0.1
)

func cpuProfile(t Tables) Profile {
	return Profile{
		Category: model.CategoryCPU,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposeGaming, When: All(AtLeast("core_count", 6), AtLeast("boost_clock", 4.5))},
				{Label: PurposeOffice, When: All(AtLeast("core_count", 4), AtLeast("boost_clock", 3.5), AtMost("tdp", 65))},
				{Label: PurposeDesign, When: All(AtLeast("core_count", 8), AtLeast("boost_clock", 4.0))},
			},
			Default: PurposeGeneral,
		},
		Scorer: ScoreFunc(func(s specs.Specs) float64 {
			cores := s.Number("core_count")
			clock := 0.6*s.Number("core_clock") + 0.4*s.Number("boost_clock")
			thermal := s.NonNegative("tdp") + 1

			smt := 0.0
			if strings.TrimSpace(s.Text("smt")) == "1" {
				smt = smtBonus
			}

			raw := (0.4*cores + 0.4*clock) * (1 + smt) / thermal
			return raw + graphicsBonus(t, s)
		}),
	}
}

func graphicsBonus(t Tables, s specs.Specs) float64 {
	switch {
	case s.ContainsAny("graphics", t.PremiumGraphics):
		return premiumGraphicsBonus
	case s.ContainsAny("graphics", t.MidTierGraphics):
		return midTierGraphicsBonus
	default:
		return 0
	}
}
