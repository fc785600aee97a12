package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/utils"
  "github.com/yungbote/incontext-backend/internal/db"
  "github.com/yungbote/incontext-backend/internal/observability"
  "github.com/yungbote/incontext-backend/internal/repos"
  "github.com/yungbote/incontext-backend/internal/services"
  "github.com/yungbote/incontext-backend/internal/handlers"
  "github.com/yungbote/incontext-backend/internal/middleware"
  "github.com/yungbote/incontext-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  port := utils.GetEnv("PORT", "8080", log)

  // Tracing
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "incontext",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      if err := shutdownOTel(ctx); err != nil {
        log.Warn("OTel shutdown failed", "error", err)
      }
    }()
  }

  // Database
  dbService, err := db.NewDBService(log)
  if err != nil {
    log.Fatal("Database init failed", "error", err)
  }
  if err = dbService.AutoMigrateAll(); err != nil {
    log.Fatal("Database auto migration failed", "error", err)
  }
  theDB := dbService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(theDB, log)
  userTokenRepo := repos.NewUserTokenRepo(theDB, log)
  listRepo := repos.NewListRepo(theDB, log)
  itemRepo := repos.NewItemRepo(theDB, log)
  detailRepo := repos.NewDetailRepo(theDB, log)
  listItemRelationRepo := repos.NewListItemRelationRepo(theDB, log)
  listDetailRelationRepo := repos.NewListDetailRelationRepo(theDB, log)
  itemDetailRelationRepo := repos.NewItemDetailRelationRepo(theDB, log)
  listTetherRepo := repos.NewListTetherRepo(theDB, log)
  untetheredContentRepo := repos.NewUntetheredContentRepo(theDB, log)
  masterListRepo := repos.NewMasterListRepo(theDB, log)
  masterItemRepo := repos.NewMasterItemRepo(theDB, log)
  masterDetailRepo := repos.NewMasterDetailRepo(theDB, log)
  masterListItemRelationRepo := repos.NewMasterListItemRelationRepo(theDB, log)
  masterListDetailRelationRepo := repos.NewMasterListDetailRelationRepo(theDB, log)
  masterItemDetailRelationRepo := repos.NewMasterItemDetailRelationRepo(theDB, log)
  agentRepo := repos.NewAgentRepo(theDB, log)
  tetheredAgentRepo := repos.NewTetheredAgentRepo(theDB, log)
  masterAgentRepo := repos.NewMasterAgentRepo(theDB, log)
  agentModelRepo := repos.NewAgentModelRepo(theDB, log)

  // Seed
  if err := dbService.SeedAll(); err != nil {
    log.Warn("Seeding failed", "error", err)
  }

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(theDB, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  listService := services.NewListService(
    theDB,
    log,
    listRepo,
    itemRepo,
    detailRepo,
    listItemRelationRepo,
    listDetailRelationRepo,
    itemDetailRelationRepo,
    listTetherRepo,
    untetheredContentRepo,
    masterListRepo,
    masterDetailRepo,
  )
  itemService := services.NewItemService(theDB, log, listService, itemRepo, listItemRelationRepo, itemDetailRelationRepo, untetheredContentRepo)
  detailService := services.NewDetailService(theDB, log, listService, detailRepo, itemRepo, listDetailRelationRepo, itemDetailRelationRepo, listTetherRepo)
  masterListService := services.NewMasterListService(
    theDB,
    log,
    userRepo,
    masterListRepo,
    masterItemRepo,
    masterDetailRepo,
    masterListItemRelationRepo,
    masterListDetailRelationRepo,
    masterItemDetailRelationRepo,
    listTetherRepo,
    untetheredContentRepo,
    listRepo,
  )
  masterItemService := services.NewMasterItemService(theDB, log, masterListService, masterItemRepo, masterDetailRepo, masterListItemRelationRepo, masterItemDetailRelationRepo)
  masterDetailService := services.NewMasterDetailService(
    theDB,
    log,
    masterListService,
    masterDetailRepo,
    masterItemRepo,
    masterListDetailRelationRepo,
    masterItemDetailRelationRepo,
    listTetherRepo,
    listItemRelationRepo,
    untetheredContentRepo,
  )
  agentService := services.NewAgentService(theDB, log, agentRepo, tetheredAgentRepo, masterAgentRepo, agentModelRepo)
  masterAgentService := services.NewMasterAgentService(theDB, log, masterAgentRepo, tetheredAgentRepo, agentModelRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(log, authService)
  listHandler := handlers.NewListHandler(log, listService)
  itemHandler := handlers.NewItemHandler(log, itemService)
  detailHandler := handlers.NewDetailHandler(log, detailService)
  masterListHandler := handlers.NewMasterListHandler(log, masterListService, masterItemService, masterDetailService)
  agentHandler := handlers.NewAgentHandler(log, agentService)
  masterAgentHandler := handlers.NewMasterAgentHandler(log, masterAgentService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    ServiceName:        "incontext",
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    ListHandler:        listHandler,
    ItemHandler:        itemHandler,
    DetailHandler:      detailHandler,
    MasterListHandler:  masterListHandler,
    AgentHandler:       agentHandler,
    MasterAgentHandler: masterAgentHandler,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
