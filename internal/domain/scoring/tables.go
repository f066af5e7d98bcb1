package scoring

import "strings"

// Tables holds the closed hardware lists the profiles consult. They are
// data, not logic: new sockets or chipsets are added here (or through
// configuration) without touching the evaluator.
type Tables struct {
	// SocketWeights rates motherboard sockets for scoring; keys are matched
	// case-insensitively.
	SocketWeights map[string]float64 `koanf:"socket_weights"`
	// DefaultSocketWeight applies to sockets missing from SocketWeights.
	DefaultSocketWeight float64 `koanf:"default_socket_weight"`
	// FlagshipSockets qualify a motherboard for the Gaming label.
	FlagshipSockets []string `koanf:"flagship_sockets"`
	// CompactFormFactors and FullFormFactors are exact form-factor names.
	CompactFormFactors []string `koanf:"compact_form_factors"`
	FullFormFactors    []string `koanf:"full_form_factors"`
	// FlagshipChipsets are substrings that mark a GPU as High-End Gaming.
	FlagshipChipsets []string `koanf:"flagship_chipsets"`
	// PremiumGraphics and MidTierGraphics are integrated-graphics markers
	// that earn a CPU its flat bonus.
	PremiumGraphics []string `koanf:"premium_graphics"`
	MidTierGraphics []string `koanf:"mid_tier_graphics"`
	// PremiumSwitches and NamedSwitches grade keyboard switches.
	PremiumSwitches []string `koanf:"premium_switches"`
	NamedSwitches   []string `koanf:"named_switches"`
}

// DefaultTables returns the built-in hardware lists.
func DefaultTables() Tables {
	return Tables{
		SocketWeights: map[string]float64{
			"AM5":     1.0,
			"LGA1700": 1.0,
			"LGA1200": 0.9,
			"AM4":     0.8,
			"STRX4":   0.7,
			"LGA1151": 0.6,
			"LGA1155": 0.4,
			"LGA1156": 0.3,
			"AM3":     0.2,
			"LGA775":  0.1,
		},
		DefaultSocketWeight: 0.5,
		FlagshipSockets:     []string{"AM5", "LGA1700", "LGA1200"},
		CompactFormFactors:  []string{"micro atx", "mini itx"},
		FullFormFactors:     []string{"atx", "eatx"},
		FlagshipChipsets:    []string{"RTX 4090", "RTX 4080", "RX 7900 XTX"},
		PremiumGraphics:     []string{"iris", "pro"},
		MidTierGraphics:     []string{"uhd"},
		PremiumSwitches:     []string{"cherry mx", "razer"},
		NamedSwitches:       []string{"gateron", "kailh"},
	}
}

// withDefaults fills every empty field of t from DefaultTables, merges
// socket weights over the default table and normalizes socket keys to
// upper case.
func (t Tables) withDefaults() Tables {
	d := DefaultTables()
	out := t
	if out.DefaultSocketWeight <= 0 {
		out.DefaultSocketWeight = d.DefaultSocketWeight
	}
	out.FlagshipSockets = orDefault(out.FlagshipSockets, d.FlagshipSockets)
	out.CompactFormFactors = orDefault(out.CompactFormFactors, d.CompactFormFactors)
	out.FullFormFactors = orDefault(out.FullFormFactors, d.FullFormFactors)
	out.FlagshipChipsets = orDefault(out.FlagshipChipsets, d.FlagshipChipsets)
	out.PremiumGraphics = orDefault(out.PremiumGraphics, d.PremiumGraphics)
	out.MidTierGraphics = orDefault(out.MidTierGraphics, d.MidTierGraphics)
	out.PremiumSwitches = orDefault(out.PremiumSwitches, d.PremiumSwitches)
	out.NamedSwitches = orDefault(out.NamedSwitches, d.NamedSwitches)

	// Configured weights are merged over the defaults.
	weights := make(map[string]float64, len(d.SocketWeights)+len(out.SocketWeights))
	for _, m := range []map[string]float64{d.SocketWeights, out.SocketWeights} {
		for socket, w := range m {
			weights[strings.ToUpper(strings.TrimSpace(socket))] = w
		}
	}
	out.SocketWeights = weights
	return out
}

// socketWeight looks up a socket, falling back to DefaultSocketWeight.
func (t Tables) socketWeight(socket string) float64 {
	if w, ok := t.SocketWeights[strings.ToUpper(strings.TrimSpace(socket))]; ok {
		return w
	}
	return t.DefaultSocketWeight
}

func orDefault(v, d []string) []string {
	if len(v) == 0 {
		return append([]string(nil), d...)
	}
	return append([]string(nil), v...)
}
