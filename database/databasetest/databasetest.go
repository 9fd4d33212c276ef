// Package databasetest opens migrated in-memory sqlite databases for tests.
package databasetest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open returns a fresh database private to t with every model migrated.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	return open(t, strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
}

// OpenWithReplica is Open with reads routed to a second, migrated database
// that never receives writes. It stands in for a replica that has fallen
// behind the primary.
func OpenWithReplica(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db := open(t, name)
	replica, err := open(t, name+"_replica").DB()
	if err != nil {
		t.Fatalf("get replica sql db: %v", err)
	}

	err = db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.New(sqlite.Config{Conn: replica})},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		t.Fatalf("register replica: %v", err)
	}
	return db
}

func open(t testing.TB, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
