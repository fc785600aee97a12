package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/services"
)

type ItemHandler struct {
  log           *logger.Logger
  itemService   services.ItemService
}

func NewItemHandler(log *logger.Logger, itemService services.ItemService) *ItemHandler {
  return &ItemHandler{
    log:         log.With("handler", "ItemHandler"),
    itemService: itemService,
  }
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  var req struct {
    Name      string              `json:"name"`
    Details   map[string]string   `json:"details"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  content, err := parseContentMap(req.Details)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  item, err := h.itemService.CreateItem(c.Request.Context(), listID, req.Name, content)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"item": item})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  itemID, err := parseUUIDParam(c, "item_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  view, err := h.itemService.GetItemView(c.Request.Context(), listID, itemID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"item": view})
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  itemID, err := parseUUIDParam(c, "item_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  var req struct {
    Name      string              `json:"name"`
    Details   map[string]string   `json:"details"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  content, err := parseContentMap(req.Details)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := h.itemService.UpdateItem(c.Request.Context(), listID, itemID, req.Name, content); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"updated": itemID})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  itemID, err := parseUUIDParam(c, "item_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.itemService.DeleteItem(c.Request.Context(), listID, itemID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": itemID})
}
