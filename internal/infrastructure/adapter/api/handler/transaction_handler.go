package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	data        usecase.DataUseCase
	recentLimit int
	logger      coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance.
// recentLimit is used when a recent listing names no limit.
func NewTransactionHandler(data usecase.DataUseCase, recentLimit int, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		data:        data,
		recentLimit: recentLimit,
		logger:      logger,
	}
}

// ListByCard handles GET /cards/:cardId/transactions
func (h *TransactionHandler) ListByCard(c *gin.Context) {
	txs := h.data.GetTransactionsByCard(c.Param("cardId"))
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txs))
}

// ListRecent handles GET /transactions/recent?limit=
func (h *TransactionHandler) ListRecent(c *gin.Context) {
	limit := h.recentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, h.logger, "Invalid limit", domainerr.NewValidationError("limit", "must be an integer"))
			return
		}
		limit = parsed
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(h.data.GetRecentTransactions(limit)))
}

// CreateTransaction handles POST /cards/:cardId/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(c, h.logger, "Invalid transaction", err)
		return
	}

	tx, err := h.data.AddTransaction(c.Request.Context(), c.Param("cardId"), input)
	if err != nil {
		writeError(c, h.logger, "Failed to add transaction", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*tx))
}

// UpdateTransaction handles PATCH /transactions/:transactionId
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req dto.TransactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	update, err := req.ToUpdate()
	if err != nil {
		writeError(c, h.logger, "Invalid transaction update", err)
		return
	}
	if update.IsEmpty() {
		writeError(c, h.logger, "Invalid transaction update", domainerr.NewValidationError("body", "no fields to update"))
		return
	}

	id := c.Param("transactionId")
	if err := h.data.UpdateTransaction(c.Request.Context(), id, update); err != nil {
		writeError(c, h.logger, "Failed to update transaction", err)
		return
	}

	for _, tx := range h.data.Transactions() {
		if tx.ID == id {
			c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// DeleteTransaction handles DELETE /transactions/:transactionId
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.data.DeleteTransaction(c.Request.Context(), c.Param("transactionId")); err != nil {
		writeError(c, h.logger, "Failed to delete transaction", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func formatBalance(balance decimal.Decimal) string {
	return entity.FormatAmount(balance)
}
