package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SessionHandler handles sign-in, sign-out and the backup credential
type SessionHandler struct {
	accounts usecase.AccountUseCase
	logger   coreport.Logger
}

// NewSessionHandler creates a new session handler instance
func NewSessionHandler(accounts usecase.AccountUseCase, logger coreport.Logger) *SessionHandler {
	return &SessionHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session())
}

// Login handles POST /session/login
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	err := h.accounts.Login(c.Request.Context(), usecase.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, "Login rejected", err)
		return
	}
	c.JSON(http.StatusOK, h.session())
}

// LoginFederated handles POST /session/federated
func (h *SessionHandler) LoginFederated(c *gin.Context) {
	var req dto.FederatedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	if err := h.accounts.LoginWithFederatedToken(c.Request.Context(), req.Credential); err != nil {
		writeError(c, h.logger, "Federated login rejected", err)
		return
	}
	c.JSON(http.StatusOK, h.session())
}

// Logout handles POST /session/logout
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context()); err != nil {
		writeError(c, h.logger, "Logout failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateBackup handles PUT /session/backup
func (h *SessionHandler) UpdateBackup(c *gin.Context) {
	var req dto.BackupSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	if err := h.accounts.UpdateBackupSettings(c.Request.Context(), req.ToUpdate()); err != nil {
		writeError(c, h.logger, "Failed to update backup settings", err)
		return
	}
	c.JSON(http.StatusOK, h.session())
}

// ValidateBackupToken handles GET /session/backup/validate
func (h *SessionHandler) ValidateBackupToken(c *gin.Context) {
	valid, err := h.accounts.ValidateBackupToken(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Failed to validate backup token", err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenValidationResponse{Valid: valid})
}

// ListBackups handles GET /session/backups
func (h *SessionHandler) ListBackups(c *gin.Context) {
	docs, err := h.accounts.ListBackups(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Failed to list backups", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBackupDocumentResponses(docs))
}

// DeleteBackup handles DELETE /session/backups/:documentId
func (h *SessionHandler) DeleteBackup(c *gin.Context) {
	if err := h.accounts.DeleteBackup(c.Request.Context(), c.Param("documentId")); err != nil {
		writeError(c, h.logger, "Failed to delete backup", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPreferences handles GET /preferences
func (h *SessionHandler) GetPreferences(c *gin.Context) {
	prefs := h.accounts.Preferences()
	c.JSON(http.StatusOK, dto.PreferencesResponse{SidebarOpen: prefs.SidebarOpen})
}

// SetPreferences handles PUT /preferences
func (h *SessionHandler) SetPreferences(c *gin.Context) {
	var req dto.PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	if err := h.accounts.SetSidebar(c.Request.Context(), *req.SidebarOpen); err != nil {
		writeError(c, h.logger, "Failed to save preferences", err)
		return
	}
	c.JSON(http.StatusOK, dto.PreferencesResponse{SidebarOpen: *req.SidebarOpen})
}

func (h *SessionHandler) session() dto.SessionResponse {
	account := h.accounts.Account()
	return dto.SessionResponse{
		Authenticated: account != nil,
		Account:       dto.ToAccountResponse(account),
		Error:         h.accounts.Error(),
	}
}
