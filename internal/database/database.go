package database

import (
	"fmt"
	"time"

	"expensebook/internal/logger"
	"expensebook/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager owns the process-wide store handle. It is opened once at startup,
// handed to every service, and closed only by tools and tests.
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens the store described by config.
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN,
			PreferSimpleProtocol: true,
		})
	case DriverSQLite:
		dialector = sqlite.Open(config.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, config: config}, nil
}

// Migrate brings the schema up to date. PostgreSQL runs the SQL migrations
// under MigrationsPath; SQLite is migrated from the gorm models.
func (m *Manager) Migrate() error {
	if m.config.Driver == DriverSQLite {
		if err := m.db.AutoMigrate(models.AllModels...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}
	return RunMigrations(m.config.MigrationsPath, m.config.URL)
}

// RunMigrations applies pending SQL migrations from sourceURL to databaseURL.
func RunMigrations(sourceURL, databaseURL string) error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open parses rawURL, connects and migrates. Used by the command-line tools.
func Open(rawURL, migrationsPath string) (*Manager, error) {
	config, err := ParseURL(rawURL, migrationsPath)
	if err != nil {
		return nil, err
	}

	manager, err := NewManager(config)
	if err != nil {
		return nil, err
	}

	if err := manager.Migrate(); err != nil {
		_ = manager.Close()
		return nil, err
	}
	return manager, nil
}
