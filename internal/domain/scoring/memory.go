package scoring

import (
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

func ramProfile(_ Tables) Profile {
	return Profile{
		Category: model.CategoryRAM,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposeGaming, When: All(AtLeast("speed_mhz", 6000), AtMost("first_word_latency", 10))},
				{Label: PurposeOffice, When: All(AtLeast("speed_mhz", 3200), AtLeast("total_capacity", 16), AtMost("first_word_latency", 12))},
				{Label: PurposeDesign, When: All(AtLeast("total_capacity", 32), AtLeast("speed_mhz", 5600))},
			},
			Default: PurposeGeneral,
		},
		Scorer: WeightedSum{
			Name:  "ram",
			Scale: 100,
			Terms: []Term{
				{Name: "speed", Weight: 0.4, Value: Ratio("speed_mhz", 6000)},
				{Name: "latency", Weight: 0.3, Value: latencyFactor},
				{Name: "capacity", Weight: 0.3, Value: Ratio("total_capacity", 32)},
			},
		},
	}
}

// latencyFactor shrinks as first-word and CAS latency grow.
func latencyFactor(s specs.Specs) float64 {
	return 1 / (s.NonNegative("first_word_latency") + s.NonNegative("cas_latency") + 1)
}
