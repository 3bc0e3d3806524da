// Package testutil provides shared fixtures for package tests. It is only
// imported from _test.go files.
package testutil

import (
	"fmt"
	"testing"

	"holo-api/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and the full schema migrated. It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("NewDB() open error = %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("NewDB() sql.DB error = %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("NewDB() migrate error = %v", err)
	}

	return db
}

// NewLogger returns a logger that only reports errors, keeping test output quiet.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}
