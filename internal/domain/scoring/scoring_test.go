package scoring_test

import (
	"testing"

	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/scoring"
	"github.com/okian/pcforge/internal/domain/specs"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEngine(t *testing.T) {
	Convey("Given the default engine", t, func() {
		e := scoring.New()

		Convey("Then every scored category is supported in display order", func() {
			So(e.Categories(), ShouldResemble, []model.Category{
				model.CategoryCPU,
				model.CategoryMotherboard,
				model.CategoryRAM,
				model.CategoryGPU,
				model.CategoryStorage,
				model.CategoryKeyboard,
				model.CategoryMouse,
			})
			So(e.Supports(model.CategoryPowerSupply), ShouldBeFalse)
		})

		Convey("When specs are empty", func() {
			empty := specs.Specs{}

			Convey("Then no category panics and fallback labels come back", func() {
				for _, c := range e.Categories() {
					So(func() { e.Classify(c, empty) }, ShouldNotPanic)
					So(func() { e.Score(c, empty) }, ShouldNotPanic)
					So(func() { e.Classify(c, nil) }, ShouldNotPanic)
				}
				So(e.Classify(model.CategoryCPU, empty), ShouldEqual, scoring.PurposeGeneral)
				So(e.Classify(model.CategoryRAM, empty), ShouldEqual, scoring.PurposeGeneral)
				So(e.Classify(model.CategoryMotherboard, empty), ShouldEqual, scoring.PurposeGeneral)
				So(e.Classify(model.CategoryStorage, empty), ShouldEqual, scoring.PurposeGeneral)
				So(e.Classify(model.CategoryGPU, empty), ShouldEqual, scoring.PurposeBudgetGaming)
				So(e.Classify(model.CategoryMouse, empty), ShouldEqual, scoring.PurposeOfficeBudget)
				So(e.Classify(model.CategoryKeyboard, empty), ShouldEqual, scoring.PurposeMidRangeGaming)
			})

			Convey("And scores are zero or the fixed baseline", func() {
				So(e.Score(model.CategoryCPU, empty), ShouldEqual, 0.0)
				So(e.Score(model.CategoryGPU, empty), ShouldEqual, 0.0)
				So(e.Score(model.CategoryRAM, empty), ShouldEqual, 30.0)
				So(e.Score(model.CategoryMotherboard, empty), ShouldEqual, 15.0)
			})
		})

		Convey("When specs carry malformed values", func() {
			s := specs.Specs{"core_count": "lots", "boost_clock": []int{1}, "tdp": map[string]any{"x": 1}}

			Convey("Then they are treated as zero", func() {
				So(e.Classify(model.CategoryCPU, s), ShouldEqual, scoring.PurposeGeneral)
				So(e.Score(model.CategoryCPU, s), ShouldEqual, 0.0)
			})
		})

		Convey("When the same specs are evaluated twice", func() {
			s := specs.Specs{"chipset": "GeForce RTX 4070", "memory": 12, "boost_clock": 2475, "cuda_cores": 5888}

			Convey("Then the results are identical", func() {
				a, okA := e.Evaluate(model.CategoryGPU, s)
				b, okB := e.Evaluate(model.CategoryGPU, s)
				So(okA, ShouldBeTrue)
				So(okB, ShouldBeTrue)
				So(a, ShouldResemble, b)
			})
		})

		Convey("When the category has no profile", func() {
			s := specs.Specs{"wattage": "650W"}

			Convey("Then classification is empty and score is zero", func() {
				So(e.Classify(model.CategoryPowerSupply, s), ShouldEqual, scoring.Purpose(""))
				So(e.Score(model.CategoryPowerSupply, s), ShouldEqual, 0.0)
				_, ok := e.Evaluate(model.CategoryPowerSupply, s)
				So(ok, ShouldBeFalse)
			})

			Convey("And annotation returns an unchanged copy", func() {
				out := e.Annotate(model.CategoryPowerSupply, s)
				So(out, ShouldResemble, s)
				So(out.Has(specs.KeyPurpose), ShouldBeFalse)
			})
		})

		Convey("When annotating a CPU", func() {
			s := specs.Specs{"core_count": 6, "core_clock": 3.7, "boost_clock": 4.6, "tdp": 65}
			out := e.Annotate(model.CategoryCPU, s)

			Convey("Then purpose and score are attached to a copy", func() {
				So(out[specs.KeyPurpose], ShouldEqual, "Gaming")
				So(out[specs.KeyPerformanceScore], ShouldEqual, 0.06)
				So(s.Has(specs.KeyPurpose), ShouldBeFalse)
			})
		})
	})
}

func TestEngineOptions(t *testing.T) {
	Convey("Given custom hardware tables", t, func() {
		e := scoring.New(scoring.WithTables(scoring.Tables{
			SocketWeights:    map[string]float64{"am5": 0.2},
			FlagshipChipsets: []string{"Arc B580"},
		}))

		Convey("Then the overridden lists are used", func() {
			So(e.Classify(model.CategoryGPU, specs.Specs{"chipset": "Intel Arc B580", "price": 249}), ShouldEqual, scoring.PurposeHighEndGaming)
			So(e.Classify(model.CategoryGPU, specs.Specs{"chipset": "RTX 4090", "memory": 24, "boost_clock": 2520}), ShouldEqual, scoring.PurposeWorkstation)
			So(e.Score(model.CategoryMotherboard, specs.Specs{"socket": "AM5"}), ShouldEqual, 6.0)
		})

		Convey("And untouched lists keep their defaults", func() {
			tables := e.Tables()
			So(tables.FlagshipSockets, ShouldResemble, scoring.DefaultTables().FlagshipSockets)
			So(tables.DefaultSocketWeight, ShouldEqual, 0.5)
			So(tables.SocketWeights, ShouldContainKey, "AM5")
		})

		Convey("And a socket override wins over its default", func() {
			So(e.Tables().SocketWeights["AM5"], ShouldEqual, 0.2)
		})
	})

	Convey("Given a socket weight for a socket the defaults do not know", t, func() {
		e := scoring.New(scoring.WithTables(scoring.Tables{
			SocketWeights: map[string]float64{"am6": 1},
		}))

		Convey("Then the default sockets keep their weights", func() {
			weights := e.Tables().SocketWeights
			So(weights["AM6"], ShouldEqual, 1.0)
			So(weights["LGA1700"], ShouldEqual, 1.0)
			So(weights["AM4"], ShouldEqual, 0.8)
			So(len(weights), ShouldEqual, len(scoring.DefaultTables().SocketWeights)+1)
			So(e.Score(model.CategoryMotherboard, specs.Specs{"socket": "AM5"}),
				ShouldEqual, scoring.New().Score(model.CategoryMotherboard, specs.Specs{"socket": "AM5"}))
		})
	})

	Convey("Given a custom profile", t, func() {
		e := scoring.New(scoring.WithProfile(scoring.Profile{
			Category: model.CategoryPowerSupply,
			Classifier: scoring.Classifier{
				Rules:   []scoring.Rule{{Label: "High Wattage", When: scoring.AtLeast("wattage", 850)}},
				Default: "Standard",
			},
			Scorer: scoring.WeightedSum{
				Scale: 100,
				Terms: []scoring.Term{{Name: "wattage", Weight: 1, Value: scoring.Ratio("wattage", 1000)}},
			},
		}))

		Convey("Then the category becomes supported", func() {
			So(e.Supports(model.CategoryPowerSupply), ShouldBeTrue)
			So(e.Classify(model.CategoryPowerSupply, specs.Specs{"wattage": 1000}), ShouldEqual, scoring.Purpose("High Wattage"))
			So(e.Score(model.CategoryPowerSupply, specs.Specs{"wattage": 650}), ShouldEqual, 65.0)
		})
	})
}

func TestClassifier(t *testing.T) {
	Convey("Given overlapping rules", t, func() {
		c := scoring.Classifier{
			Rules: []scoring.Rule{
				{Label: "first", When: scoring.AtLeast("x", 1)},
				{Label: "second", When: scoring.AtLeast("x", 0)},
			},
			Default: "none",
		}

		Convey("Then the first match wins", func() {
			So(c.Classify(specs.Specs{"x": 5}), ShouldEqual, scoring.Purpose("first"))
			So(c.Classify(specs.Specs{"x": 0}), ShouldEqual, scoring.Purpose("second"))
			So(c.Classify(specs.Specs{"x": -1}), ShouldEqual, scoring.Purpose("none"))
		})
	})

	Convey("Given the combinators", t, func() {
		s := specs.Specs{"a": 3, "name": "Cherry MX Brown", "flag": true}

		Convey("Then they compose as boolean logic", func() {
			So(scoring.All(scoring.AtLeast("a", 3), scoring.AtMost("a", 3))(s), ShouldBeTrue)
			So(scoring.All(scoring.Above("a", 3))(s), ShouldBeFalse)
			So(scoring.Any(scoring.Above("a", 3), scoring.IsSet("flag"))(s), ShouldBeTrue)
			So(scoring.Contains("name", "mx")(s), ShouldBeTrue)
			So(scoring.OneOf("name", "cherry mx brown")(s), ShouldBeTrue)
			So(scoring.OneOf("name", "cherry")(s), ShouldBeFalse)
		})
	})
}

func TestWeightedSum(t *testing.T) {
	Convey("Given a capped weighted sum", t, func() {
		w := scoring.WeightedSum{
			Scale:   10,
			Terms:   []scoring.Term{{Name: "v", Weight: 1, Value: scoring.Ratio("v", 1)}},
			Ceiling: 50,
		}

		Convey("Then it is scaled, capped and rounded", func() {
			So(w.Score(specs.Specs{"v": 1.23456}), ShouldEqual, 12.35)
			So(w.Score(specs.Specs{"v": 100}), ShouldEqual, 50.0)
			So(w.Score(specs.Specs{"v": -3}), ShouldEqual, 0.0)
		})
	})

	Convey("Given a formula that divides by zero", t, func() {
		f := scoring.ScoreFunc(func(s specs.Specs) float64 { return s.Number("x") / s.Number("y") })

		Convey("Then the non-finite result becomes zero", func() {
			So(f.Score(specs.Specs{"x": 1}), ShouldEqual, 0.0)
			So(f.Score(specs.Specs{}), ShouldEqual, 0.0)
		})
	})
}
