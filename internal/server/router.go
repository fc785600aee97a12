package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/yungbote/incontext-backend/internal/handlers"
  "github.com/yungbote/incontext-backend/internal/middleware"
)

type RouterConfig struct {
  ServiceName          string
  AuthHandler          *handlers.AuthHandler
  AuthMiddleware       *middleware.AuthMiddleware
  ListHandler          *handlers.ListHandler
  ItemHandler          *handlers.ItemHandler
  DetailHandler        *handlers.DetailHandler
  MasterListHandler    *handlers.MasterListHandler
  AgentHandler         *handlers.AgentHandler
  MasterAgentHandler   *handlers.MasterAgentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  serviceName := cfg.ServiceName
  if serviceName == "" {
    serviceName = "incontext"
  }
  router.Use(otelgin.Middleware(serviceName))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Refresh-Token"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)
  router.POST("/refresh", cfg.AuthMiddleware.WithRefreshToken(), cfg.AuthHandler.Refresh)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/logout", cfg.AuthHandler.Logout)

  // Lists
  protected.GET("/lists", cfg.ListHandler.ListUserLists)
  protected.POST("/lists", cfg.ListHandler.CreateList)
  protected.POST("/lists/tethered", cfg.ListHandler.CreateTetheredList)
  protected.GET("/lists/:list_id", cfg.ListHandler.GetList)
  protected.PUT("/lists/:list_id", cfg.ListHandler.UpdateList)
  protected.DELETE("/lists/:list_id", cfg.ListHandler.DeleteList)

  // Items
  protected.POST("/lists/:list_id/items", cfg.ItemHandler.CreateItem)
  protected.GET("/lists/:list_id/items/:item_id", cfg.ItemHandler.GetItem)
  protected.PUT("/lists/:list_id/items/:item_id", cfg.ItemHandler.UpdateItem)
  protected.DELETE("/lists/:list_id/items/:item_id", cfg.ItemHandler.DeleteItem)

  // Details
  protected.GET("/lists/:list_id/details", cfg.DetailHandler.ListDetails)
  protected.POST("/lists/:list_id/details", cfg.DetailHandler.CreateDetail)
  protected.PUT("/lists/:list_id/details/:detail_id", cfg.DetailHandler.UpdateDetail)
  protected.DELETE("/lists/:list_id/details/:detail_id", cfg.DetailHandler.DeleteDetail)

  // Single master entities are readable by any logged-in user; the
  // index and collection-level create have no entity to resolve and
  // are guarded up front. Writes on a specific entity get their admin
  // check inside the service, after the existence check, so missing
  // targets still read as 404.
  protected.GET("/master-lists", cfg.AuthMiddleware.RequireAdmin(), cfg.MasterListHandler.ListMasterLists)
  protected.POST("/master-lists", cfg.AuthMiddleware.RequireAdmin(), cfg.MasterListHandler.CreateMasterList)
  protected.GET("/master-lists/:master_list_id", cfg.MasterListHandler.GetMasterList)
  protected.PUT("/master-lists/:master_list_id", cfg.MasterListHandler.UpdateMasterList)
  protected.DELETE("/master-lists/:master_list_id", cfg.MasterListHandler.DeleteMasterList)
  protected.POST("/master-lists/:master_list_id/items", cfg.MasterListHandler.CreateMasterItem)
  protected.GET("/master-lists/:master_list_id/items/:master_item_id", cfg.MasterListHandler.GetMasterItem)
  protected.PUT("/master-lists/:master_list_id/items/:master_item_id", cfg.MasterListHandler.UpdateMasterItem)
  protected.DELETE("/master-lists/:master_list_id/items/:master_item_id", cfg.MasterListHandler.DeleteMasterItem)
  protected.POST("/master-lists/:master_list_id/details", cfg.MasterListHandler.CreateMasterDetail)
  protected.PUT("/master-lists/:master_list_id/details/:master_detail_id", cfg.MasterListHandler.UpdateMasterDetail)
  protected.DELETE("/master-lists/:master_list_id/details/:master_detail_id", cfg.MasterListHandler.DeleteMasterDetail)

  // Agents
  protected.GET("/agents", cfg.AgentHandler.ListAgents)
  protected.POST("/agents", cfg.AgentHandler.CreateAgent)
  protected.POST("/agents/tethered", cfg.AgentHandler.CreateTetheredAgent)
  protected.DELETE("/agents/tethered/:tethered_agent_id", cfg.AgentHandler.DeleteTetheredAgent)
  protected.GET("/agents/:agent_id", cfg.AgentHandler.GetAgent)
  protected.PUT("/agents/:agent_id", cfg.AgentHandler.UpdateAgent)
  protected.DELETE("/agents/:agent_id", cfg.AgentHandler.DeleteAgent)

  // Master agents
  protected.GET("/master-agents", cfg.AuthMiddleware.RequireAdmin(), cfg.MasterAgentHandler.ListMasterAgents)
  protected.POST("/master-agents", cfg.AuthMiddleware.RequireAdmin(), cfg.MasterAgentHandler.CreateMasterAgent)
  protected.GET("/master-agents/:master_agent_id", cfg.MasterAgentHandler.GetMasterAgent)
  protected.PUT("/master-agents/:master_agent_id", cfg.MasterAgentHandler.UpdateMasterAgent)
  protected.DELETE("/master-agents/:master_agent_id", cfg.MasterAgentHandler.DeleteMasterAgent)
  protected.GET("/agent-models", cfg.MasterAgentHandler.ListAgentModels)

  return router
}
