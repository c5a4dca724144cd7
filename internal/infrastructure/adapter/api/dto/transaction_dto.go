package dto

import (
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

// TransactionRequest represents the API request for recording a transaction
type TransactionRequest struct {
	Amount      string     `json:"amount" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=income expense"`
	Description string     `json:"description" binding:"required"`
	Date        *time.Time `json:"date"`
}

// TransactionUpdateRequest is a partial transaction update; cardId moves the transaction
type TransactionUpdateRequest struct {
	CardID      *string    `json:"cardId"`
	Amount      *string    `json:"amount"`
	Type        *string    `json:"type"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// TransactionResponse represents a stored transaction
type TransactionResponse struct {
	ID          string    `json:"id"`
	CardID      string    `json:"cardId"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToInput parses the request into use case input
func (r TransactionRequest) ToInput() (usecase.TransactionInput, error) {
	amount, err := entity.ParsePositiveAmount(r.Amount)
	if err != nil {
		return usecase.TransactionInput{}, err
	}
	txType, err := entity.ParseTransactionType(r.Type)
	if err != nil {
		return usecase.TransactionInput{}, err
	}

	input := usecase.TransactionInput{
		Amount:      amount,
		Type:        txType,
		Description: r.Description,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input, nil
}

// ToUpdate parses the request into a transaction update
func (r TransactionUpdateRequest) ToUpdate() (entity.TransactionUpdate, error) {
	update := entity.TransactionUpdate{
		CardID:      r.CardID,
		Description: r.Description,
		Date:        r.Date,
	}
	if r.Amount != nil {
		amount, err := entity.ParsePositiveAmount(*r.Amount)
		if err != nil {
			return entity.TransactionUpdate{}, err
		}
		update.Amount = &amount
	}
	if r.Type != nil {
		txType, err := entity.ParseTransactionType(*r.Type)
		if err != nil {
			return entity.TransactionUpdate{}, err
		}
		update.Type = &txType
	}
	return update, nil
}

// ToTransactionResponse maps a transaction
func ToTransactionResponse(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		CardID:      tx.CardID,
		Amount:      entity.FormatAmount(tx.Amount),
		Type:        string(tx.Type),
		Description: tx.Description,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}

// ToTransactionResponses maps a list, never returning nil
func ToTransactionResponses(txs []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionResponse(tx))
	}
	return out
}
