package scoring

import (
	"strings"

	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

func keyboardProfile(t Tables) Profile {
	return Profile{
		Category: model.CategoryKeyboard,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposePremiumGaming, When: All(Contains("style", "gaming"), Above("price", 150))},
				{Label: PurposeOfficeBudget, When: All(Contains("style", "standard", "slim", "ergonomic"), AtMost("price", 50))},
				{Label: PurposeCompact, When: Any(Contains("style", "mini"), IsSet("tenkeyless"))},
			},
			Default: PurposeMidRangeGaming,
		},
		Scorer: WeightedSum{
			Name:  "keyboard",
			Scale: 100,
			Terms: []Term{
				{Name: "switches", Weight: 0.4, Value: switchWeight(t)},
				{Name: "backlit", Weight: 0.3, Value: backlitWeight},
				{Name: "connection", Weight: 0.3, Value: connectionWeight},
			},
		},
	}
}

func mouseProfile(_ Tables) Profile {
	return Profile{
		Category: model.CategoryMouse,
		Classifier: Classifier{
			Rules: []Rule{
				{Label: PurposePremiumGaming, When: All(AtLeast("max_dpi", 20000), Above("price", 100))},
				{Label: PurposeOfficeBudget, When: All(AtMost("price", 30), AtMost("max_dpi", 4000))},
				{Label: PurposePortable, When: All(Contains("connection_type", "wireless"), AtMost("max_dpi", 12000))},
			},
			Default: PurposeMidRangeGaming,
		},
		Scorer: WeightedSum{
			Name:  "mouse",
			Scale: 100,
			Terms: []Term{
				{Name: "max_dpi", Weight: 0.6, Value: Ratio("max_dpi", 20000)},
				{Name: "connection", Weight: 0.4, Value: connectionWeight},
			},
		},
	}
}

// switchWeight grades premium switch brands over other named switches.
// Empty and "unknown" switches earn nothing.
func switchWeight(t Tables) Value {
	return func(s specs.Specs) float64 {
		sw := strings.TrimSpace(s.Lower("switches"))
		switch {
		case sw == "" || sw == "unknown":
			return 0
		case s.ContainsAny("switches", t.PremiumSwitches):
			return 1
		case s.ContainsAny("switches", t.NamedSwitches):
			return 0.8
		default:
			return 0.5
		}
	}
}

func backlitWeight(s specs.Specs) float64 {
	backlit := strings.TrimSpace(s.Lower("backlit"))
	switch {
	case strings.Contains(backlit, "rgb"):
		return 1
	case backlit != "" && backlit != "none":
		return 0.7
	default:
		return 0
	}
}

// connectionWeight is shared by keyboards and mice.
func connectionWeight(s specs.Specs) float64 {
	conn := s.Lower("connection_type")
	switch {
	case strings.Contains(conn, "wireless"):
		return 1
	case strings.Contains(conn, "both"):
		return 0.8
	case strings.Contains(conn, "wired"):
		return 0.6
	default:
		return 0
	}
}
