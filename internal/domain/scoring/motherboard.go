package scoring

import (
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

func motherboardProfile(t Tables) Profile {
	return Profile{
		Category: model.CategoryMotherboard,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposeGaming, When: All(AtLeast("max_memory", 128), AtLeast("memory_slots", 4), OneOf("socket", t.FlagshipSockets...))},
				{Label: PurposeOffice, When: All(AtLeast("max_memory", 64), OneOf("form_factor", t.CompactFormFactors...))},
				{Label: PurposeDesign, When: All(AtLeast("max_memory", 128), AtLeast("memory_slots", 4), OneOf("form_factor", t.FullFormFactors...))},
			},
			Default: PurposeGeneral,
		},
		Scorer: WeightedSum{
			Name:  "motherboard",
			Scale: 100,
			Terms: []Term{
				{Name: "max_memory", Weight: 0.4, Value: Ratio("max_memory", 128)},
				{Name: "memory_slots", Weight: 0.3, Value: Ratio("memory_slots", 4)},
				{Name: "socket", Weight: 0.3, Value: func(s specs.Specs) float64 { return t.socketWeight(s.Text("socket")) }},
			},
		},
	}
}
