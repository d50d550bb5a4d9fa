package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/tripbudget/backend/internal/config"
	"github.com/tripbudget/backend/pkg/advisor"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/models"
)

// OpenService connects to the configured database and returns the budget
// service on top of it. The returned function closes the connection.
func OpenService(cfg config.Config) (*budget.Service, func() error, error) {
	// SQLite needs the directory of the database file
	if cfg.Database.Driver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.Database.DSN); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
	}

	db, err := models.Connect(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	opts := budget.Options{
		AdvisorTimeout: cfg.Advisor.Timeout,
		Locale:         cfg.Locale(),
	}

	// Only set the interface when enabled, a nil *advisor.Client would not
	// compare equal to nil
	if cfg.AdvisorEnabled() {
		opts.Advisor = advisor.New(cfg.Advisor)
		log.Info().Str("model", cfg.Advisor.Model).Msg("Advisor enabled")
	}

	return budget.NewService(models.NewStore(db), opts), sqlDB.Close, nil
}
