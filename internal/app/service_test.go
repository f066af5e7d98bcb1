package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/okian/pcforge/internal/adapters/repository"
	service "github.com/okian/pcforge/internal/app"
	"github.com/okian/pcforge/internal/domain/compat"
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/scoring"
	"github.com/okian/pcforge/internal/domain/specs"
	"github.com/okian/pcforge/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func startedService(opts ...service.Option) *service.Service {
	opts = append([]service.Option{service.WithIDGenerator(sequentialIDs())}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Checker().Headroom(), ShouldEqual, compat.DefaultPowerHeadroom)
			So(svc.RequiredCategories(), ShouldResemble, model.DefaultRequiredCategories)
			So(svc.Engine().Supports(model.CategoryCPU), ShouldBeTrue)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithStore(repository.NewMemoryStore(repository.WithMaxPageSize(5))),
			service.WithEngine(scoring.New()),
			service.WithChecker(compat.New(compat.WithPowerHeadroom(0.8))),
			service.WithRequiredCategories([]model.Category{model.CategoryCPU}),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Checker().Headroom(), ShouldEqual, 0.8)
			So(svc.RequiredCategories(), ShouldResemble, []model.Category{model.CategoryCPU})
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When calling catalog operations before starting", func() {
			_, err := svc.GetComponent(context.Background(), "x")

			Convey("Then they should report that the service is not started", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["components"], ShouldEqual, 0)
				So(stats["builds"], ShouldEqual, 0)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})
		})

		Convey("When starting with a missing seed file", func() {
			svc := service.New(service.WithSeedFile("/non/existent/catalog.yaml"))
			err := svc.Start(context.Background())

			Convey("Then it should fail with a seed error", func() {
				So(errors.Is(err, repository.ErrInvalidSeed), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And stopping again should be safe", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Evaluate(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When evaluating CPU specs", func() {
			res, ok := svc.Evaluate(ctx, model.CategoryCPU, specs.Specs{
				"core_count": 6, "core_clock": 4.7, "boost_clock": 5.3, "tdp": 105, "smt": "1",
			})

			Convey("Then it should classify and score them", func() {
				So(ok, ShouldBeTrue)
				So(res.Purpose, ShouldEqual, scoring.PurposeGaming)
				So(res.Score, ShouldEqual, 0.05)
			})
		})

		Convey("When evaluating an unsupported category", func() {
			res, ok := svc.Evaluate(ctx, model.CategoryPowerSupply, specs.Specs{"wattage": "650W"})

			Convey("Then it should report false", func() {
				So(ok, ShouldBeFalse)
				So(res.Purpose, ShouldEqual, scoring.Purpose(""))
			})
		})
	})
}

func TestService_CheckSelection(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When the selection has a socket mismatch", func() {
			res := svc.CheckSelection(ctx, model.Selection{
				model.CategoryCPU:         {Category: model.CategoryCPU, Specs: specs.Specs{"socket": "LGA1700"}},
				model.CategoryMotherboard: {Category: model.CategoryMotherboard, Specs: specs.Specs{"socket": "AM5"}},
			})

			Convey("Then it should report the issue", func() {
				So(res.Compatible, ShouldBeFalse)
				So(res.Issues, ShouldResemble, []string{
					"CPU socket (LGA1700) is not compatible with motherboard socket (AM5)",
				})
				So(res.Violations[0].Rule, ShouldEqual, compat.RuleSocket)
			})
		})

		Convey("When the selection is empty", func() {
			res := svc.CheckSelection(ctx, model.Selection{})

			Convey("Then it should be compatible with no issues", func() {
				So(res.Compatible, ShouldBeTrue)
				So(res.Issues, ShouldNotBeNil)
				So(res.Issues, ShouldBeEmpty)
			})
		})
	})
}

func TestService_Components(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When creating a component without an id", func() {
			c, err := svc.CreateComponent(ctx, model.Component{
				Category: model.CategoryGPU,
				Name:     "Radeon RX 7600",
				Price:    450,
				Specs:    specs.Specs{"memory": 8, "boost_clock": 2655, "cuda_cores": 2048},
			})

			Convey("Then it should get a generated id", func() {
				So(err, ShouldBeNil)
				So(c.ID, ShouldEqual, "id-1")
			})

			Convey("And the listed price should feed the classifier", func() {
				So(c.Purpose(), ShouldEqual, string(scoring.PurposeMidRangeGaming))
				So(c.Specs.Has("price"), ShouldBeFalse)
			})

			Convey("And it should be retrievable", func() {
				got, err := svc.GetComponent(ctx, c.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, c)
			})
		})

		Convey("When creating a component with caller-supplied derived fields", func() {
			c, err := svc.CreateComponent(ctx, model.Component{
				ID:       "cpu-x",
				Category: model.CategoryCPU,
				Name:     "Quad",
				Specs: specs.Specs{
					"core_count": 4, "boost_clock": 3.8, "tdp": 65,
					specs.KeyPurpose: "Gaming", specs.KeyPerformanceScore: 99,
				},
			})

			Convey("Then the derived fields should be recomputed", func() {
				So(err, ShouldBeNil)
				So(c.Purpose(), ShouldEqual, string(scoring.PurposeOffice))
				So(c.PerformanceScore(), ShouldBeLessThan, 99)
			})
		})

		Convey("When creating an invalid component", func() {
			_, err := svc.CreateComponent(ctx, model.Component{Category: model.CategoryCPU, Price: 10})

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, model.ErrInvalidComponent), ShouldBeTrue)
			})
		})

		Convey("When creating a duplicate id", func() {
			c := model.Component{ID: "dup", Category: model.CategoryMouse, Name: "Mouse"}
			_, err := svc.CreateComponent(ctx, c)
			So(err, ShouldBeNil)
			_, err = svc.CreateComponent(ctx, c)

			Convey("Then it should report a conflict", func() {
				So(errors.Is(err, repository.ErrAlreadyExists), ShouldBeTrue)
			})
		})

		Convey("When updating a component", func() {
			_, err := svc.CreateComponent(ctx, model.Component{
				ID: "cpu-y", Category: model.CategoryCPU, Name: "Dual", Specs: specs.Specs{"core_count": 2},
			})
			So(err, ShouldBeNil)

			updated, err := svc.UpdateComponent(ctx, model.Component{
				ID: "cpu-y", Name: "Hexa", Specs: specs.Specs{"core_count": 6, "boost_clock": 5},
			})

			Convey("Then the derived fields should follow the new specs", func() {
				So(err, ShouldBeNil)
				So(updated.Category, ShouldEqual, model.CategoryCPU)
				So(updated.Purpose(), ShouldEqual, string(scoring.PurposeGaming))
			})

			Convey("And changing its category should fail", func() {
				_, err := svc.UpdateComponent(ctx, model.Component{
					ID: "cpu-y", Category: model.CategoryGPU, Name: "Hexa",
				})
				So(errors.Is(err, model.ErrCategoryImmutable), ShouldBeTrue)
			})
		})

		Convey("When updating an unknown component", func() {
			_, err := svc.UpdateComponent(ctx, model.Component{ID: "ghost", Category: model.CategoryCPU, Name: "x"})

			Convey("Then it should report not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When deleting a component", func() {
			_, err := svc.CreateComponent(ctx, model.Component{ID: "kb", Category: model.CategoryKeyboard, Name: "KB"})
			So(err, ShouldBeNil)
			So(svc.DeleteComponent(ctx, "kb"), ShouldBeNil)

			Convey("Then it should be gone", func() {
				_, err := svc.GetComponent(ctx, "kb")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(svc.DeleteComponent(ctx, "kb"), repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Builds(t *testing.T) {
	Convey("Given a started service with a small catalog", t, func() {
		svc := startedService(service.WithRequiredCategories([]model.Category{
			model.CategoryCPU, model.CategoryMotherboard,
		}))
		defer svc.Stop()
		ctx := context.Background()

		for _, c := range []model.Component{
			{ID: "cpu-am5", Category: model.CategoryCPU, Name: "AM5 CPU", Price: 250, Specs: specs.Specs{"socket": "AM5"}},
			{ID: "cpu-intel", Category: model.CategoryCPU, Name: "Intel CPU", Price: 300, Specs: specs.Specs{"socket": "LGA1700"}},
			{ID: "mb-am5", Category: model.CategoryMotherboard, Name: "AM5 Board", Price: 200, Specs: specs.Specs{"socket": "AM5"}},
		} {
			_, err := svc.CreateComponent(ctx, c)
			So(err, ShouldBeNil)
		}

		Convey("When creating a build without a name", func() {
			_, err := svc.CreateBuild(ctx, "  ", "")

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When creating an empty build", func() {
			report, err := svc.CreateBuild(ctx, "Gaming rig", "")
			So(err, ShouldBeNil)

			Convey("Then it should be incomplete with no issues", func() {
				So(report.Build.Name, ShouldEqual, "Gaming rig")
				So(report.TotalPrice, ShouldEqual, 0.0)
				So(report.Compatible, ShouldBeTrue)
				So(report.Complete, ShouldBeFalse)
				So(report.Missing, ShouldResemble, []model.Category{model.CategoryCPU, model.CategoryMotherboard})
			})

			Convey("And adding matching parts should complete it", func() {
				_, err := svc.AddToBuild(ctx, report.Build.ID, "cpu-am5")
				So(err, ShouldBeNil)
				r, err := svc.AddToBuild(ctx, report.Build.ID, "mb-am5")
				So(err, ShouldBeNil)

				So(r.Complete, ShouldBeTrue)
				So(r.Compatible, ShouldBeTrue)
				So(r.TotalPrice, ShouldEqual, 450.0)
			})

			Convey("And replacing the CPU with a mismatched socket should warn but succeed", func() {
				_, err := svc.AddToBuild(ctx, report.Build.ID, "mb-am5")
				So(err, ShouldBeNil)
				_, err = svc.AddToBuild(ctx, report.Build.ID, "cpu-am5")
				So(err, ShouldBeNil)
				r, err := svc.AddToBuild(ctx, report.Build.ID, "cpu-intel")
				So(err, ShouldBeNil)

				So(r.Build.Len(), ShouldEqual, 2)
				So(r.TotalPrice, ShouldEqual, 500.0)
				So(r.Compatible, ShouldBeFalse)
				So(r.Issues, ShouldHaveLength, 1)
			})

			Convey("And removing a category should drop it", func() {
				_, err := svc.AddToBuild(ctx, report.Build.ID, "cpu-am5")
				So(err, ShouldBeNil)
				r, err := svc.RemoveFromBuild(ctx, report.Build.ID, model.CategoryCPU)
				So(err, ShouldBeNil)
				So(r.Build.Len(), ShouldEqual, 0)

				r, err = svc.RemoveFromBuild(ctx, report.Build.ID, model.CategoryCPU)
				So(err, ShouldBeNil)
				So(r.Build.Len(), ShouldEqual, 0)
			})

			Convey("And adding an unknown component should fail", func() {
				_, err := svc.AddToBuild(ctx, report.Build.ID, "ghost")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("And copying it should carry the components over", func() {
				_, err := svc.AddToBuild(ctx, report.Build.ID, "cpu-am5")
				So(err, ShouldBeNil)
				cp, err := svc.CreateBuild(ctx, "Copy", report.Build.ID)
				So(err, ShouldBeNil)

				So(cp.Build.ID, ShouldNotEqual, report.Build.ID)
				So(cp.Build.Has("cpu-am5"), ShouldBeTrue)
				So(cp.TotalPrice, ShouldEqual, 250.0)
			})

			Convey("And deleting it should remove it", func() {
				So(svc.DeleteBuild(ctx, report.Build.ID), ShouldBeNil)
				_, err := svc.GetBuild(ctx, report.Build.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When copying from an unknown build", func() {
			_, err := svc.CreateBuild(ctx, "Copy", "ghost")

			Convey("Then it should report not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When listing components compatible with a build", func() {
			report, err := svc.CreateBuild(ctx, "AM5", "")
			So(err, ShouldBeNil)
			_, err = svc.AddToBuild(ctx, report.Build.ID, "mb-am5")
			So(err, ShouldBeNil)

			page, err := svc.ListComponents(ctx, repository.Query{
				Filter: repository.Filter{Category: model.CategoryCPU},
			}, report.Build.ID)

			Convey("Then mismatched sockets should be filtered out", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 1)
				So(page.Items[0].ID, ShouldEqual, "cpu-am5")
			})

			Convey("And an unknown build should report not found", func() {
				_, err := svc.ListComponents(ctx, repository.Query{}, "ghost")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When listing builds", func() {
			_, err := svc.CreateBuild(ctx, "One", "")
			So(err, ShouldBeNil)
			_, err = svc.CreateBuild(ctx, "Two", "")
			So(err, ShouldBeNil)
			builds, err := svc.ListBuilds(ctx)

			Convey("Then every build should be returned", func() {
				So(err, ShouldBeNil)
				So(builds, ShouldHaveLength, 2)
				So(svc.GetStats()["builds"], ShouldEqual, 2)
			})
		})
	})
}
