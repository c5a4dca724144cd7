package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CardHandler handles card and balance requests
type CardHandler struct {
	data   usecase.DataUseCase
	logger coreport.Logger
}

// NewCardHandler creates a new card handler instance
func NewCardHandler(data usecase.DataUseCase, logger coreport.Logger) *CardHandler {
	return &CardHandler{
		data:   data,
		logger: logger,
	}
}

// ListCards handles GET /cards
func (h *CardHandler) ListCards(c *gin.Context) {
	cards := h.data.Cards()
	out := make([]dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, dto.ToCardResponse(card, h.data.CalculateCardBalance(card.ID)))
	}
	c.JSON(http.StatusOK, out)
}

// GetCard handles GET /cards/:cardId
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID := c.Param("cardId")
	card, ok := h.data.GetCardByID(cardID)
	if !ok {
		writeError(c, h.logger, "Card lookup failed", domainerr.ErrCardNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(*card, h.data.CalculateCardBalance(cardID)))
}

// CreateCard handles POST /cards
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		writeError(c, h.logger, "Invalid card", err)
		return
	}

	card, err := h.data.AddCard(c.Request.Context(), input)
	if err != nil {
		writeError(c, h.logger, "Failed to add card", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCardResponse(*card, card.Balance))
}

// UpdateCard handles PATCH /cards/:cardId
func (h *CardHandler) UpdateCard(c *gin.Context) {
	var req dto.CardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	update, err := req.ToUpdate()
	if err != nil {
		writeError(c, h.logger, "Invalid card update", err)
		return
	}
	if update.IsEmpty() {
		writeError(c, h.logger, "Invalid card update", domainerr.NewValidationError("body", "no fields to update"))
		return
	}

	cardID := c.Param("cardId")
	if err := h.data.UpdateCard(c.Request.Context(), cardID, update); err != nil {
		writeError(c, h.logger, "Failed to update card", err)
		return
	}
	h.GetCard(c)
}

// DeleteCard handles DELETE /cards/:cardId
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if err := h.data.DeleteCard(c.Request.Context(), c.Param("cardId")); err != nil {
		writeError(c, h.logger, "Failed to delete card", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCardBalance handles GET /cards/:cardId/balance.
// An unknown card has a zero balance.
func (h *CardHandler) GetCardBalance(c *gin.Context) {
	cardID := c.Param("cardId")
	c.JSON(http.StatusOK, dto.BalanceResponse{
		CardID:  cardID,
		Balance: formatBalance(h.data.CalculateCardBalance(cardID)),
	})
}

// GetTotalBalance handles GET /balance
func (h *CardHandler) GetTotalBalance(c *gin.Context) {
	c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance: formatBalance(h.data.GetTotalBalance()),
	})
}
