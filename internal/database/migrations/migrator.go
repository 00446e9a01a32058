package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"gorm.io/gorm"
)

// SQLFiles holds the plain SQL migrations shipped with the binary
//
//go:embed sql/*.sql
var SQLFiles embed.FS

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// Migrator keeps a registry of migrations and applies pending ones in id order
type Migrator struct {
	migrations map[string]Migration
}

func NewMigrator() *Migrator {
	return &Migrator{migrations: make(map[string]Migration)}
}

// Register adds a new migration to the registry
func (m *Migrator) Register(id string, up, down func(*gorm.DB) error) {
	m.migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// LoadSQL registers every .sql file in dir as an up-only migration
func (m *Migrator) LoadSQL(fsys fs.FS, dir string) error {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		statement := string(content)
		m.Register(strings.TrimSuffix(file.Name(), ".sql"), func(db *gorm.DB) error {
			return db.Exec(statement).Error
		}, nil)
	}

	return nil
}

func (m *Migrator) ids() []string {
	ids := make([]string, 0, len(m.migrations))
	for id := range m.migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func executed(db *gorm.DB) (map[string]bool, error) {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var records []MigrationRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get executed migrations: %w", err)
	}

	done := make(map[string]bool, len(records))
	for _, r := range records {
		done[r.ID] = true
	}
	return done, nil
}

// Pending returns the ids that have not been applied yet
func (m *Migrator) Pending(db *gorm.DB) ([]string, error) {
	done, err := executed(db)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, id := range m.ids() {
		if !done[id] {
			pending = append(pending, id)
		}
	}
	return pending, nil
}

// Run executes all pending migrations, each in its own transaction
func (m *Migrator) Run(db *gorm.DB) error {
	pending, err := m.Pending(db)
	if err != nil {
		return err
	}

	for _, id := range pending {
		migration := m.migrations[id]
		logger.Info("Running migration", "id", id)

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: id}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
	}

	return nil
}

// Rollback reverts a single applied migration
func (m *Migrator) Rollback(db *gorm.DB, id string) error {
	migration, ok := m.migrations[id]
	if !ok {
		return fmt.Errorf("unknown migration %s", id)
	}
	if migration.Down == nil {
		return fmt.Errorf("migration %s cannot be rolled back", id)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := migration.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&MigrationRecord{ID: id}).Error
	})
}
