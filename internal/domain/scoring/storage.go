package scoring

import (
	"strings"

	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

// interfaceTier grades a drive interface; the first matching marker wins.
type interfaceTier struct {
	marker string
	weight float64
}

var interfaceTiers = []interfaceTier{
	{marker: "pcie 5.0", weight: 5},
	{marker: "pcie 4.0", weight: 4},
	{marker: "pcie 3.0", weight: 3},
	{marker: "sata", weight: 2},
}

const (
	unknownInterfaceWeight = 1
	solidStateWeight       = 2
	spinningDiskWeight     = 1
	pricePerGBEpsilon      = 0.001
)

func storageProfile(_ Tables) Profile {
	ssd := isSolidState
	return Profile{
		Category: model.CategoryStorage,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposeGaming, When: All(ssd, Contains("interface", "pcie 4.0", "pcie 5.0"))},
				{Label: PurposeStorage, When: All(Contains("type", "5400", "7200"), AtLeast("capacity", 4000))},
				{Label: PurposeOffice, When: All(ssd, Contains("interface", "sata"), AtMost("capacity", 2000))},
			},
			Default: PurposeGeneral,
		},
		Scorer: ScoreFunc(func(s specs.Specs) float64 {
			typeWeight := float64(spinningDiskWeight)
			if isSolidState(s) {
				typeWeight = solidStateWeight
			}
			cache := 0.0
			if c := s.Number("cache"); c > 0 {
				cache = c / 1000
			}
			throughput := (s.Number("capacity") / 1000) * interfaceWeight(s) * typeWeight
			return (throughput + cache) / (s.NonNegative("price_per_gb") + pricePerGBEpsilon)
		}),
	}
}

func isSolidState(s specs.Specs) bool {
	return strings.EqualFold(strings.TrimSpace(s.Text("type")), "SSD")
}

func interfaceWeight(s specs.Specs) float64 {
	iface := s.Lower("interface")
	for _, tier := range interfaceTiers {
		if strings.Contains(iface, tier.marker) {
			return tier.weight
		}
	}
	return unknownInterfaceWeight
}
