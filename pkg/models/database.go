package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Connect opens the database, migrates the schema and registers the error
// translation callbacks.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch driver {
	case DriverSQLite, "":
		db, err = connectSQLite(dsn)
	case DriverPostgres:
		db, err = connectPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}

	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: &logger{
			Logger:        log.Logger,
			SlowThreshold: 200 * time.Millisecond,
		},
	}
}

func connectSQLite(dsn string) (*gorm.DB, error) {
	// The schema is migrated with foreign keys disabled since sqlite
	// does not support ALTER COLUMN and copies tables instead
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	db, err = gorm.Open(sqlite.Open(fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, separator)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func connectPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "tripbudget:after_query", queryCallback},
		{db.Callback().Query().After("*"), "tripbudget:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "tripbudget:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "tripbudget:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "tripbudget:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "tripbudget:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "tripbudget:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	return nil
}

var pluralIES = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = pluralIES.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback replaces constraint violations with user friendly errors
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()
	if strings.Contains(msg, "UNIQUE constraint failed: itinerary_days.itinerary_id, itinerary_days.day_index") ||
		strings.Contains(msg, "idx_itinerary_day") {
		db.Error = ErrDayIndexNotUnique
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" ||
		reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) ||
		errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Itinerary{}, ItineraryDay{}, BudgetRecord{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
