package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/services"
)

type MasterAgentHandler struct {
  log                  *logger.Logger
  masterAgentService   services.MasterAgentService
}

func NewMasterAgentHandler(log *logger.Logger, masterAgentService services.MasterAgentService) *MasterAgentHandler {
  return &MasterAgentHandler{
    log:                log.With("handler", "MasterAgentHandler"),
    masterAgentService: masterAgentService,
  }
}

func (h *MasterAgentHandler) ListMasterAgents(c *gin.Context) {
  masterAgents, err := h.masterAgentService.GetMasterAgents(c.Request.Context())
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_agents": masterAgents})
}

func (h *MasterAgentHandler) CreateMasterAgent(c *gin.Context) {
  var req agentRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  input, err := req.toInput()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  masterAgent, err := h.masterAgentService.CreateMasterAgent(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_agent": masterAgent})
}

func (h *MasterAgentHandler) GetMasterAgent(c *gin.Context) {
  masterAgentID, err := parseUUIDParam(c, "master_agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  masterAgent, err := h.masterAgentService.GetMasterAgentChecked(c.Request.Context(), masterAgentID, false)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_agent": masterAgent})
}

func (h *MasterAgentHandler) UpdateMasterAgent(c *gin.Context) {
  masterAgentID, err := parseUUIDParam(c, "master_agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  var req agentRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  input, err := req.toInput()
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  masterAgent, err := h.masterAgentService.UpdateMasterAgent(c.Request.Context(), masterAgentID, input)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_agent": masterAgent})
}

func (h *MasterAgentHandler) DeleteMasterAgent(c *gin.Context) {
  masterAgentID, err := parseUUIDParam(c, "master_agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.masterAgentService.DeleteMasterAgent(c.Request.Context(), masterAgentID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": masterAgentID})
}

func (h *MasterAgentHandler) ListAgentModels(c *gin.Context) {
  models, err := h.masterAgentService.GetAgentModels(c.Request.Context())
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"agent_models": models})
}
