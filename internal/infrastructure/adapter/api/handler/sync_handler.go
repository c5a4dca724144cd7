package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SyncHandler handles settings and backup sync requests
type SyncHandler struct {
	data   usecase.DataUseCase
	logger coreport.Logger
}

// NewSyncHandler creates a new sync handler instance
func NewSyncHandler(data usecase.DataUseCase, logger coreport.Logger) *SyncHandler {
	return &SyncHandler{
		data:   data,
		logger: logger,
	}
}

// GetSettings handles GET /settings
func (h *SyncHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToSettingsResponse(h.data.Settings()))
}

// UpdateSettings handles PATCH /settings
func (h *SyncHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	if err := h.data.UpdateSettings(c.Request.Context(), req.ToUpdate()); err != nil {
		writeError(c, h.logger, "Failed to update settings", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(h.data.Settings()))
}

// Push handles POST /sync/push
func (h *SyncHandler) Push(c *gin.Context) {
	if err := h.data.SyncToCloud(c.Request.Context()); err != nil {
		writeError(c, h.logger, "Push to backup store failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(h.data.Status()))
}

// Pull handles POST /sync/pull
func (h *SyncHandler) Pull(c *gin.Context) {
	if err := h.data.SyncFromCloud(c.Request.Context()); err != nil {
		writeError(c, h.logger, "Pull from backup store failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(h.data.Status()))
}

// GetStatus handles GET /sync/status
func (h *SyncHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(h.data.Status()))
}

// ClearError handles DELETE /sync/error
func (h *SyncHandler) ClearError(c *gin.Context) {
	h.data.ClearError()
	c.Status(http.StatusNoContent)
}
