// Package cli implements the pcforge command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/pcforge/internal/app"
	"github.com/okian/pcforge/internal/config"
	"github.com/okian/pcforge/internal/domain/compat"
	"github.com/okian/pcforge/internal/domain/scoring"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

// NewRootCmd builds the pcforge command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "pcforge",
		Short:         "PC build compatibility and scoring service",
		Long:          "pcforge checks PC part selections for compatibility and scores components by purpose.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"YAML config file (defaults to $"+config.EnvFile+")")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newEvaluateCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves configuration for a subcommand.
func (o *rootOptions) loadConfig(ctx context.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(ctx, o.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// engineOptions maps configuration onto service options shared by every
// subcommand.
func engineOptions(cfg *config.Config) []service.Option {
	required, _ := cfg.Required() // validated by config.Load
	return []service.Option{
		service.WithEngine(scoring.New(scoring.WithTables(cfg.Scoring))),
		service.WithChecker(compat.New(compat.WithPowerHeadroom(cfg.Compat.PowerHeadroom))),
		service.WithRequiredCategories(required),
	}
}
