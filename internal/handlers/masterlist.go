package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/incontext-backend/internal/logger"
  "github.com/yungbote/incontext-backend/internal/services"
)

type MasterListHandler struct {
  log                   *logger.Logger
  masterListService     services.MasterListService
  masterItemService     services.MasterItemService
  masterDetailService   services.MasterDetailService
}

func NewMasterListHandler(
  log *logger.Logger,
  masterListService services.MasterListService,
  masterItemService services.MasterItemService,
  masterDetailService services.MasterDetailService,
) *MasterListHandler {
  return &MasterListHandler{
    log:                 log.With("handler", "MasterListHandler"),
    masterListService:   masterListService,
    masterItemService:   masterItemService,
    masterDetailService: masterDetailService,
  }
}

func (h *MasterListHandler) ListMasterLists(c *gin.Context) {
  masterLists, err := h.masterListService.GetMasterLists(c.Request.Context())
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_lists": masterLists})
}

func (h *MasterListHandler) CreateMasterList(c *gin.Context) {
  var req struct {
    Name          string      `json:"name"`
    Description   string      `json:"description"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  masterList, err := h.masterListService.CreateMasterList(c.Request.Context(), req.Name, req.Description)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_list": masterList})
}

func (h *MasterListHandler) GetMasterList(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  view, err := h.masterListService.GetMasterListView(c.Request.Context(), masterListID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, view)
}

func (h *MasterListHandler) UpdateMasterList(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
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
  masterList, err := h.masterListService.UpdateMasterList(c.Request.Context(), masterListID, req.Name, req.Description)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_list": masterList})
}

func (h *MasterListHandler) DeleteMasterList(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.masterListService.DeleteMasterList(c.Request.Context(), masterListID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": masterListID})
}

func (h *MasterListHandler) CreateMasterItem(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
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
  masterItem, err := h.masterItemService.CreateMasterItem(c.Request.Context(), masterListID, req.Name, content)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_item": masterItem})
}

func (h *MasterListHandler) GetMasterItem(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  masterItemID, err := parseUUIDParam(c, "master_item_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  view, err := h.masterItemService.GetMasterItemView(c.Request.Context(), masterListID, masterItemID)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_item": view})
}

func (h *MasterListHandler) UpdateMasterItem(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  masterItemID, err := parseUUIDParam(c, "master_item_id")
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
  if err := h.masterItemService.UpdateMasterItem(c.Request.Context(), masterListID, masterItemID, req.Name, content); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"updated": masterItemID})
}

func (h *MasterListHandler) DeleteMasterItem(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  masterItemID, err := parseUUIDParam(c, "master_item_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.masterItemService.DeleteMasterItem(c.Request.Context(), masterListID, masterItemID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": masterItemID})
}

func (h *MasterListHandler) CreateMasterDetail(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
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
  masterDetail, err := h.masterDetailService.CreateMasterDetail(c.Request.Context(), masterListID, req.Name, req.Description)
  if err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"master_detail": masterDetail})
}

func (h *MasterListHandler) UpdateMasterDetail(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  masterDetailID, err := parseUUIDParam(c, "master_detail_id")
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
  if err := h.masterDetailService.UpdateMasterDetail(c.Request.Context(), masterListID, masterDetailID, req.Name, req.Description); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"updated": masterDetailID})
}

func (h *MasterListHandler) DeleteMasterDetail(c *gin.Context) {
  masterListID, err := parseUUIDParam(c, "master_list_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  masterDetailID, err := parseUUIDParam(c, "master_detail_id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_param", err)
    return
  }
  if err := h.masterDetailService.DeleteMasterDetail(c.Request.Context(), masterListID, masterDetailID); err != nil {
    RespondServiceError(c, h.log, err)
    return
  }
  RespondOK(c, gin.H{"deleted": masterDetailID})
}
