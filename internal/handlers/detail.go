package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/services"
)

type DetailHandler struct {
  log             *logger.Logger
  detailService   services.DetailService
}

func NewDetailHandler(log *logger.Logger, detailService services.DetailService) *DetailHandler {
  return &DetailHandler{
    log:           log.With("handler", "DetailHandler"),
    detailService: detailService,
  }
}

func (h *DetailHandler) ListDetails(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  details, tethered, err := h.detailService.GetEffectiveDetails(c.Request.Context(), listID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"details": details, "tethered": tethered})
}

func (h *DetailHandler) CreateDetail(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  var req struct {
    Name          string      `json:"name"`
    Description   string      `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  detail, err := h.detailService.CreateDetail(c.Request.Context(), listID, req.Name, req.Description)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"detail": detail})
}

func (h *DetailHandler) UpdateDetail(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  detailID, err := parseUUIDParam(c, "detail_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  var req struct {
    Name          string      `json:"name"`
    Description   string      `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := h.detailService.UpdateDetail(c.Request.Context(), listID, detailID, req.Name, req.Description); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"updated": detailID})
}

func (h *DetailHandler) DeleteDetail(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  detailID, err := parseUUIDParam(c, "detail_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.detailService.DeleteDetail(c.Request.Context(), listID, detailID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": detailID})
}
