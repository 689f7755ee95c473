package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SscSPs/gl_backend/internal/app"
	"github.com/SscSPs/gl_backend/internal/dto"
	"github.com/SscSPs/gl_backend/internal/middleware"
	"github.com/SscSPs/gl_backend/internal/platform/config"
	"github.com/SscSPs/gl_backend/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cfg.StorageDriver != config.StoragePostgres {
				return fmt.Errorf("migrate needs STORAGE_DRIVER=%s, got %s", config.StoragePostgres, cfg.StorageDriver)
			}

			applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no new migrations")
			}
			return nil
		},
	}
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import a general-ledger export (.csv or .xlsx) from a path, https or gs:// URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireCompany(); err != nil {
				return err
			}
			location := args[0]
			if _, err := os.Stat(location); err == nil {
				abs, err := filepath.Abs(location)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				location = "file://" + abs
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Services.Import.ImportGeneralLedger(cmd.Context(), opts.companyID, location, opts.userID)
				if err != nil {
					return err
				}
				if err := printJSON(cmd, result); err != nil {
					return err
				}
				if !result.Success {
					return fmt.Errorf("%d rows could not be imported", result.ErrorCount)
				}
				return nil
			})
		},
	}
}

func newUnmatchedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unmatched",
		Short: "List imported labels that resolve to no account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireCompany(); err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				unmatched, err := a.Services.Mapping.FindUnmatchedEntries(cmd.Context(), opts.companyID)
				if err != nil {
					return err
				}
				return printJSON(cmd, dto.ToUnmatchedEntryResponses(unmatched))
			})
		},
	}
}

func newAutoMapCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "automap",
		Short: "Map account labels that match exactly one active account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireCompany(); err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Services.Mapping.AutoMapObviousMatches(cmd.Context(), opts.companyID, opts.userID)
				if err != nil {
					return err
				}
				return printJSON(cmd, dto.ToAutoMapResponse(result))
			})
		},
	}
}

func newRecalculateCommand(opts *rootOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Rebuild every account balance of a company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireCompany(); err != nil {
				return err
			}
			if mode != dto.RecalcModeSimple && mode != dto.RecalcModeMappings {
				return fmt.Errorf("--mode must be %s or %s", dto.RecalcModeSimple, dto.RecalcModeMappings)
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				result, err := a.Services.Balance.RecalculateBalances(cmd.Context(), opts.companyID, mode == dto.RecalcModeMappings, opts.userID)
				if err != nil {
					return err
				}
				return printJSON(cmd, dto.ToRecalculationResponse(mode, result))
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", dto.RecalcModeMappings, "simple (journals and direct matches) or mappings")

	return cmd
}

func newTokenCommand(opts *rootOptions) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for --user signed with JWT_SECRET",
		Long:  "Print a bearer token for --user signed with JWT_SECRET. With --company the token is scoped to that company.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			var scope []string
			if opts.companyID != "" {
				scope = append(scope, opts.companyID)
			}
			token, err := middleware.IssueToken(opts.userID, cfg.JWTSecret, cfg.JWTIssuer, ttl, scope...)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
