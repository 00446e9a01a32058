package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestRunAppliesInOrderOnce(t *testing.T) {
	db := openMemory(t)
	m := NewMigrator()

	var order []string
	m.Register("0002_second", func(tx *gorm.DB) error {
		order = append(order, "0002_second")
		return nil
	}, nil)
	m.Register("0001_first", func(tx *gorm.DB) error {
		order = append(order, "0001_first")
		return tx.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY)").Error
	}, nil)

	require.NoError(t, m.Run(db))
	require.NoError(t, m.Run(db))

	assert.Equal(t, []string{"0001_first", "0002_second"}, order)
	assert.True(t, db.Migrator().HasTable("notes"))
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db := openMemory(t)
	m := NewMigrator()
	m.Register("0001_broken", func(tx *gorm.DB) error {
		return tx.Exec("CREATE TABLE").Error
	}, nil)

	assert.Error(t, m.Run(db))

	pending, err := m.Pending(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_broken"}, pending)
}

func TestLoadSQL(t *testing.T) {
	db := openMemory(t)
	fsys := fstest.MapFS{
		"sql/0001_boxes.sql": {Data: []byte("CREATE TABLE boxes (id TEXT PRIMARY KEY);")},
		"sql/README.md":      {Data: []byte("ignored")},
	}

	m := NewMigrator()
	require.NoError(t, m.LoadSQL(fsys, "sql"))
	require.NoError(t, m.Run(db))

	assert.True(t, db.Migrator().HasTable("boxes"))
}

func TestEmbeddedSQLFilesPresent(t *testing.T) {
	m := NewMigrator()
	require.NoError(t, m.LoadSQL(SQLFiles, "sql"))

	assert.Contains(t, m.ids(), "0003_lunch_box_date_index")
}

func TestRollback(t *testing.T) {
	db := openMemory(t)
	m := NewMigrator()
	m.Register("0001_table", func(tx *gorm.DB) error {
		return tx.Exec("CREATE TABLE trays (id INTEGER)").Error
	}, func(tx *gorm.DB) error {
		return tx.Exec("DROP TABLE trays").Error
	})
	m.Register("0002_sql_only", func(tx *gorm.DB) error { return nil }, nil)
	require.NoError(t, m.Run(db))

	require.NoError(t, m.Rollback(db, "0001_table"))
	assert.False(t, db.Migrator().HasTable("trays"))
	assert.Error(t, m.Rollback(db, "0002_sql_only"))
	assert.Error(t, m.Rollback(db, "9999_missing"))

	pending, err := m.Pending(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_table"}, pending)
}
