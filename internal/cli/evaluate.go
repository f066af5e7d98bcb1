package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/pcforge/internal/app"
	"github.com/okian/pcforge/internal/domain/model"
	"github.com/okian/pcforge/internal/domain/specs"
)

// ErrUnsupportedCategory is returned for categories without a scoring profile.
var ErrUnsupportedCategory = errors.New("category has no scoring profile")

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	var (
		category   string
		pairs      []string
		file       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Classify and score a component from its specs",
		Long: "Compute the purpose label and performance score for raw specs. " +
			"Specs come from a YAML mapping (--file) and/or key=value pairs (--spec); pairs win.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			in, err := readSpecs(file, pairs)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			svc := service.New(engineOptions(cfg)...)
			res, ok := svc.Evaluate(cmd.Context(), cat, in)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnsupportedCategory, cat)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			fmt.Fprintf(out, "category:          %s\n", res.Category)
			fmt.Fprintf(out, "purpose:           %s\n", res.Purpose)
			fmt.Fprintf(out, "performance_score: %g\n", res.Score)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Component category, e.g. CPU or memory")
	cmd.Flags().StringArrayVarP(&pairs, "spec", "s", nil, "Spec as key=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a specs mapping")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// readSpecs merges a YAML specs file with key=value pairs.
func readSpecs(file string, pairs []string) (specs.Specs, error) {
	in := specs.Specs{}
	if file != "" {
		raw, err := os.ReadFile(file) //nolint:gosec // path comes from the operator
		if err != nil {
			return nil, fmt.Errorf("read specs: %w", err)
		}
		if err := yaml.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("parse specs %s: %w", file, err)
		}
		if in == nil {
			in = specs.Specs{}
		}
	}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --spec %q: want key=value", p)
		}
		in[key] = strings.TrimSpace(value)
	}
	return in, nil
}
