package dto

import (
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
)

// CardRequest represents the API request for creating a card.
// Balance is a decimal string; empty means zero.
type CardRequest struct {
	Name    string `json:"name" binding:"required"`
	Balance string `json:"balance"`
	Color   string `json:"color"`
}

// CardUpdateRequest is a partial card update
type CardUpdateRequest struct {
	Name    *string `json:"name"`
	Balance *string `json:"balance"`
	Color   *string `json:"color"`
}

// CardResponse represents a card together with its derived balance
type CardResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Balance        string    `json:"balance"`
	CurrentBalance string    `json:"currentBalance"`
	Color          string    `json:"color"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BalanceResponse represents a derived balance; CardID is empty for the total
type BalanceResponse struct {
	CardID  string `json:"cardId,omitempty"`
	Balance string `json:"balance"`
}

// ToInput parses the request into use case input
func (r CardRequest) ToInput() (usecase.CardInput, error) {
	balance := decimal.Zero
	if r.Balance != "" {
		parsed, err := entity.ParseAmount(r.Balance)
		if err != nil {
			return usecase.CardInput{}, err
		}
		balance = parsed
	}
	return usecase.CardInput{Name: r.Name, Balance: balance, Color: r.Color}, nil
}

// ToUpdate parses the request into a card update
func (r CardUpdateRequest) ToUpdate() (entity.CardUpdate, error) {
	update := entity.CardUpdate{Name: r.Name, Color: r.Color}
	if r.Balance != nil {
		balance, err := entity.ParseAmount(*r.Balance)
		if err != nil {
			return entity.CardUpdate{}, err
		}
		update.Balance = &balance
	}
	return update, nil
}

// ToCardResponse maps a card and its current balance
func ToCardResponse(card entity.Card, current decimal.Decimal) CardResponse {
	return CardResponse{
		ID:             card.ID,
		Name:           card.Name,
		Balance:        entity.FormatAmount(card.Balance),
		CurrentBalance: entity.FormatAmount(current),
		Color:          card.Color,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}
