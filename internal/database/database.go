package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/config"
	"github.com/vladimiradmaev/lunchlego/internal/database/migrations"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/clause"
)

const connectAttempts = 5

// Open connects to the configured database and brings the schema up to date
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = openPostgres(cfg)
	case config.DriverSQLite, "":
		db, err = openSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "driver", cfg.Driver)
	return db, nil
}

const slowQueryThreshold = 200 * time.Millisecond

func gormConfig() *gorm.Config {
	w := slog.NewLogLogger(logger.WithComponent("gorm").Handler(), slog.LevelWarn)
	return &gorm.Config{Logger: newGormLogger(w)}
}

// newGormLogger reports slow queries and failures. Not-found is the normal
// find-or-create path and stays quiet.
func newGormLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func openPostgres(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := gorm.Open(postgres.Open(dsn), gormConfig())
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					return db, nil
				}
			} else {
				err = dbErr
			}
		}
		lastErr = err

		logger.Warn("Database connection attempt failed", "attempt", attempt, "error", err)
		if attempt < connectAttempts {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, lastErr)
}

func openSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// every connection to ":memory:" gets its own empty database
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// NewMigrator returns the migration set for this schema
func NewMigrator() (*migrations.Migrator, error) {
	m := migrations.NewMigrator()

	m.Register("0001_schema", func(tx *gorm.DB) error {
		return tx.AutoMigrate(Models()...)
	}, nil)

	m.Register("0002_default_settings", func(tx *gorm.DB) error {
		defaults := []Setting{
			{Key: "notifications", Value: "false"},
			{Key: "theme", Value: `"light"`},
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error
	}, func(tx *gorm.DB) error {
		return tx.Where("setting_key IN ?", []string{"notifications", "theme"}).Delete(&Setting{}).Error
	})

	if err := m.LoadSQL(migrations.SQLFiles, "sql"); err != nil {
		return nil, err
	}
	return m, nil
}

// Migrate runs pending migrations, then syncs columns added to the models since
func Migrate(db *gorm.DB) error {
	m, err := NewMigrator()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := m.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
