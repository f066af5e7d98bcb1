package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/pcforge/internal/app"
	"github.com/okian/pcforge/internal/domain/model"
)

// ErrIncompatible is returned by check --strict when issues were found.
var ErrIncompatible = errors.New("selection has compatibility issues")

// buildFile is the YAML document read by check.
type buildFile struct {
	Name       string                     `yaml:"name"`
	Components map[string]model.Component `yaml:"components"`
}

type checkReport struct {
	Name       string           `json:"name,omitempty"`
	TotalPrice float64          `json:"total_price"`
	Missing    []model.Category `json:"missing"`
	Complete   bool             `json:"complete"`
	service.CheckResult
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		file       string
		strict     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a build file for compatibility issues",
		Long: "Read a YAML build (components keyed by category) and report compatibility issues " +
			"and missing required categories. Issues are warnings unless --strict is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := readBuildFile(file)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			svc := service.New(engineOptions(cfg)...)
			missing := b.Missing(svc.RequiredCategories())
			report := checkReport{
				Name:        b.Name,
				TotalPrice:  b.TotalPrice(),
				Missing:     missing,
				Complete:    len(missing) == 0,
				CheckResult: svc.CheckSelection(cmd.Context(), b.Selection()),
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				renderCheck(cmd.OutOrStdout(), report)
			}

			if strict && !report.Compatible {
				return fmt.Errorf("%w: %d found", ErrIncompatible, len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML build file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when issues are found")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readBuildFile decodes a build file into a Build. Map keys name the
// category; a component's own type must agree with its key.
func readBuildFile(path string) (*model.Build, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("read build: %w", err)
	}
	var doc buildFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse build %s: %w", path, err)
	}

	b := model.NewBuild("", doc.Name)
	for key, c := range doc.Components {
		cat, err := model.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", path, err)
		}
		if c.Category == "" {
			c.Category = cat
		}
		if c.Category != cat {
			return nil, fmt.Errorf("build %s: component under %s has type %s", path, cat, c.Category)
		}
		b.Add(c)
	}
	return b, nil
}

func renderCheck(w io.Writer, r checkReport) {
	if r.Name != "" {
		fmt.Fprintf(w, "build: %s\n", r.Name)
	}
	fmt.Fprintf(w, "total price: %.2f\n", r.TotalPrice)
	if r.Compatible {
		fmt.Fprintln(w, "compatible: yes")
	} else {
		fmt.Fprintf(w, "compatible: no (%d issues)\n", len(r.Issues))
		for _, issue := range r.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
	}
	if r.Complete {
		fmt.Fprintln(w, "complete: yes")
		return
	}
	fmt.Fprintln(w, "complete: no")
	for _, c := range r.Missing {
		fmt.Fprintf(w, "  missing %s\n", c)
	}
}
