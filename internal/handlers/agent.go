package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/services"
)

type agentRequest struct {
  Name           string      `json:"name"`
  Description    string      `json:"description"`
  ModelID        string      `json:"model_id"`
  Role           string      `json:"role"`
  Instructions   string      `json:"instructions"`
}

func (r agentRequest) toInput() (services.AgentInput, error) {
  modelID, err := parseUUIDParamValue(r.ModelID, "model_id")
  if err != nil {
    return services.AgentInput{}, err
  }
  return services.AgentInput{
    Name:         r.Name,
    Description:  r.Description,
    ModelID:      modelID,
    Role:         r.Role,
    Instructions: r.Instructions,
  }, nil
}

type AgentHandler struct {
  log            *logger.Logger
  agentService   services.AgentService
}

func NewAgentHandler(log *logger.Logger, agentService services.AgentService) *AgentHandler {
  return &AgentHandler{
    log:          log.With("handler", "AgentHandler"),
    agentService: agentService,
  }
}

func (h *AgentHandler) ListAgents(c *gin.Context) {
  agents, tetheredAgents, err := h.agentService.GetAgents(c.Request.Context())
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"agents": agents, "tethered_agents": tetheredAgents})
}

func (h *AgentHandler) CreateAgent(c *gin.Context) {
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
  agent, err := h.agentService.CreateAgent(c.Request.Context(), input)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"agent": agent})
}

func (h *AgentHandler) GetAgent(c *gin.Context) {
  agentID, err := parseUUIDParam(c, "agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  agent, err := h.agentService.GetAgentChecked(c.Request.Context(), agentID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"agent": agent})
}

func (h *AgentHandler) UpdateAgent(c *gin.Context) {
  agentID, err := parseUUIDParam(c, "agent_id")
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
  agent, err := h.agentService.UpdateAgent(c.Request.Context(), agentID, input)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"agent": agent})
}

func (h *AgentHandler) DeleteAgent(c *gin.Context) {
  agentID, err := parseUUIDParam(c, "agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.agentService.DeleteAgent(c.Request.Context(), agentID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": agentID})
}

func (h *AgentHandler) CreateTetheredAgent(c *gin.Context) {
  var req struct {
    MasterAgentID   string      `json:"master_agent_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  masterAgentID, err := parseUUIDParamValue(req.MasterAgentID, "master_agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  tetheredAgent, err := h.agentService.CreateTetheredAgent(c.Request.Context(), masterAgentID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"tethered_agent": tetheredAgent})
}

func (h *AgentHandler) DeleteTetheredAgent(c *gin.Context) {
  tetheredAgentID, err := parseUUIDParam(c, "tethered_agent_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.agentService.DeleteTetheredAgent(c.Request.Context(), tetheredAgentID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": tetheredAgentID})
}
