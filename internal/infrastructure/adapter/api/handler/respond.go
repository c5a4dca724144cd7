package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// writeError maps a domain error onto its status code and error body
func writeError(c *gin.Context, logger coreport.Logger, message string, err error) {
	status := domainerr.HTTPStatus(err)
	_ = c.Error(err)

	fields := coreport.ErrorFields(err, map[string]any{
		"path":   c.Request.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields)
	} else {
		logger.Warn(message, fields)
	}

	body := dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	}
	if status == http.StatusInternalServerError {
		body.Message = "Internal server error"
	}
	c.JSON(status, body)
}

// badRequest answers a body that could not be bound
func badRequest(c *gin.Context, logger coreport.Logger, err error) {
	_ = c.Error(err)
	logger.Warn("Invalid request format", map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrValidation),
		Message: "Invalid request format: " + err.Error(),
	})
}
