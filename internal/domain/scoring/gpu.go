package scoring

import "github.com/okian/pcforge/internal/domain/model"

// gpuScoreCeiling clamps GPU scores to a 0-100 scale.
const gpuScoreCeiling = 100

func gpuProfile(t Tables) Profile {
	return Profile{
		Category: model.CategoryGPU,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposeHighEndGaming, When: Contains("chipset", t.FlagshipChipsets...)},
				{Label: PurposeWorkstation, When: All(AtLeast("memory", 16), AtLeast("boost_clock", 2000))},
				{Label: PurposeBudgetGaming, When: All(AtMost("price", 300), AtMost("memory", 8))},
			},
			Default: PurposeMidRangeGaming,
		},
		Scorer: WeightedSum{
			Name:  "gpu",
			Scale: 100,
			Terms: []Term{
				{Name: "boost_clock", Weight: 0.5, Value: Ratio("boost_clock", 2500)},
				{Name: "memory", Weight: 0.3, Value: Ratio("memory", 24)},
				{Name: "cuda_cores", Weight: 0.2, Value: Ratio("cuda_cores", 16000)},
			},
			Ceiling: gpuScoreCeiling,
		},
	}
}
