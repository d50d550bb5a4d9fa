// Package cli implements budgetctl, the command line client that works
// directly on the database of the backend.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tripbudget/backend/internal/config"
	"github.com/tripbudget/backend/pkg/budget"
)

type options struct {
	driver  string
	dsn     string
	verbose bool

	cfg config.Config
}

// NewRootCommand returns the budgetctl command with all subcommands.
func NewRootCommand(version string) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Trip budget command line client",
		Long:          "Summarize, reallocate and analyze trip budgets stored in the database of the backend.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := zerolog.WarnLevel
			if o.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if o.driver != "" {
				cfg.Database.Driver = o.driver
			}
			if o.dsn != "" {
				cfg.Database.DSN = o.dsn
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			o.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&o.driver, "db-driver", "", "Database driver, overrides DB_DRIVER")
	cmd.PersistentFlags().StringVar(&o.dsn, "db-dsn", "", "Database DSN, overrides DB_DSN")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newSummaryCommand(o),
		newReallocateCommand(o),
		newAnalyzeCommand(o),
	)

	return cmd
}

// run opens the service for the duration of fn.
func (o *options) run(fn func(*budget.Service) error) error {
	service, closeDB, err := OpenService(o.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeDB(); err != nil {
			log.Error().Err(err).Msg("Closing database")
		}
	}()

	return fn(service)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseItinerary(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, errors.New("--itinerary is required")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid itinerary ID '%s': %w", s, err)
	}

	return id, nil
}
