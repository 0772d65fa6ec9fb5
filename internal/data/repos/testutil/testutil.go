package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/credfacil/promotora-backend/internal/data/db"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

var (
	dbOnce   sync.Once
	sharedDB *gorm.DB
	dbErr    error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database shared by the whole test binary. It defaults
// to a throwaway SQLite file; set TEST_POSTGRES_DSN to run the same suites
// against Postgres.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}

		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			sharedDB, dbErr = gorm.Open(postgres.Open(dsn), cfg)
			if dbErr != nil {
				return
			}
			if dbErr = sharedDB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; dbErr != nil {
				return
			}
		} else {
			dir, err := os.MkdirTemp("", "promotora-test-*")
			if err != nil {
				dbErr = err
				return
			}
			dsn := filepath.Join(dir, "test.db") + "?_busy_timeout=5000"
			sharedDB, dbErr = gorm.Open(sqlite.Open(dsn), cfg)
			if dbErr != nil {
				return
			}
		}

		dbErr = db.AutoMigrateAll(sharedDB)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return sharedDB
}

// Tx hands out a transaction that is rolled back when the test finishes, so
// repo tests never leak rows into the shared database.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
