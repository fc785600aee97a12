package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/services"
)

type ListHandler struct {
  log           *logger.Logger
  listService   services.ListService
}

func NewListHandler(log *logger.Logger, listService services.ListService) *ListHandler {
  return &ListHandler{
    log:         log.With("handler", "ListHandler"),
    listService: listService,
  }
}

func (h *ListHandler) ListUserLists(c *gin.Context) {
  lists, err := h.listService.GetUserLists(c.Request.Context())
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"lists": lists})
}

func (h *ListHandler) CreateList(c *gin.Context) {
  var req struct {
    Name          string      `json:"name"`
    Description   string      `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  list, err := h.listService.CreateList(c.Request.Context(), req.Name, req.Description)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"list": list})
}

func (h *ListHandler) CreateTetheredList(c *gin.Context) {
  var req struct {
    MasterListID  string      `json:"master_list_id"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  masterListID, err := parseUUIDParamValue(req.MasterListID, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  list, err := h.listService.CreateTetheredList(c.Request.Context(), masterListID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"list": list})
}

func (h *ListHandler) GetList(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  view, err := h.listService.GetListView(c.Request.Context(), listID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, view)
}

func (h *ListHandler) UpdateList(c *gin.Context) {
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
  list, err := h.listService.UpdateList(c.Request.Context(), listID, req.Name, req.Description)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"list": list})
}

func (h *ListHandler) DeleteList(c *gin.Context) {
  listID, err := parseUUIDParam(c, "list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.listService.DeleteList(c.Request.Context(), listID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": listID})
}
