package testutil

import (
	"sync"
	"testing"

	"github.com/yungbote/incontext-backend/internal/logger"
	"github.com/yungbote/incontext-backend/internal/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
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

// DB opens a fresh in-memory database per call so tests that run
// service-level transactions stay isolated from each other.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	if err := autoMigrateAll(db); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

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

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.UserToken{},

		&types.List{},
		&types.Item{},
		&types.Detail{},
		&types.ListItemRelation{},
		&types.ListDetailRelation{},
		&types.ItemDetailRelation{},
		&types.ListTether{},
		&types.UntetheredContent{},

		&types.MasterList{},
		&types.MasterItem{},
		&types.MasterDetail{},
		&types.MasterListItemRelation{},
		&types.MasterListDetailRelation{},
		&types.MasterItemDetailRelation{},

		&types.Agent{},
		&types.TetheredAgent{},
		&types.MasterAgent{},
		&types.AgentModel{},
	)
}
