// Package cli implements glctl, the operator command line for the ledger.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/gl_backend/internal/app"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/spf13/cobra"
)

// ConfigLoader returns the configuration commands run against.
type ConfigLoader func() (*config.Config, error)

type rootOptions struct {
	loadConfig ConfigLoader
	companyID  string
	userID     string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(loadConfig ConfigLoader) *cobra.Command {
	opts := &rootOptions{loadConfig: loadConfig}

	rootCmd := &cobra.Command{
		Use:   "glctl",
		Short: "Operate the general ledger: migrations, imports, mappings and balances",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.companyID, "company", "", "company the command acts on")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", "glctl", "user recorded in audit fields")

	rootCmd.AddCommand(
		newMigrateCommand(opts),
		newImportCommand(opts),
		newUnmatchedCommand(opts),
		newAutoMapCommand(opts),
		newRecalculateCommand(opts),
		newTokenCommand(opts),
	)

	return rootCmd
}

// withApp builds the services, runs fn and releases them.
func (o *rootOptions) withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	a, err := app.New(ctx, cfg, logger, app.WithLocalImports())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func (o *rootOptions) requireCompany() error {
	if o.companyID == "" {
		return fmt.Errorf("--company is required")
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
