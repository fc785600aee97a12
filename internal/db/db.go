package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/yungbote/incontext-backend/internal/types"
  "github.com/yungbote/incontext-backend/internal/utils"
  "github.com/yungbote/incontext-backend/internal/logger"
)

type DBService struct {
  db  *gorm.DB
  log *logger.Logger
}

// NewDBService opens the relational store. The default is an embedded
// sqlite file; DB_DRIVER=postgres switches to a server connection.
func NewDBService(log *logger.Logger) (*DBService, error) {
  serviceLog := log.With("service", "DBService")

  driver := utils.GetEnv("DB_DRIVER", "sqlite", log)

  var dialector gorm.Dialector
  switch driver {
  case "postgres":
    host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    port := utils.GetEnv("POSTGRES_PORT", "5432", log)
    user := utils.GetEnv("POSTGRES_USER", "postgres", log)
    password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    name := utils.GetEnv("POSTGRES_NAME", "incontext", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
    dialector = postgres.Open(dsn)
  case "sqlite":
    path := utils.GetEnv("DATABASE_PATH", "incontext.sqlite", log)
    dialector = sqlite.Open(path)
  default:
    return nil, fmt.Errorf("Unknown DB_DRIVER %q", driver)
  }

  log.Info("Connecting to database...", "driver", driver)
  db, err := gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to database", "driver", driver, "error", err)
    return nil, fmt.Errorf("Failed to connect to database: %w", err)
  }

  return &DBService{db: db, log: serviceLog}, nil
}

func (s *DBService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
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
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *DBService) DB() *gorm.DB {
  return s.db
}
