package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// MaxCardNameLength bounds the display name of a card
const MaxCardNameLength = 100

// CardColors is the palette offered for new cards
var CardColors = []string{
	"#112533",
	"#263d26",
	"#3c1c41",
	"#463822",
	"#361a24",
	"#353214",
	"#3f0d14",
	"#1c3534",
}

// DefaultCardColor is used when a card is created without a color
var DefaultCardColor = CardColors[0]

// Card is a named account holding an initial balance baseline.
// The current balance is never stored; see CardBalance.
type Card struct {
	ID        string
	Name      string
	Balance   decimal.Decimal // initial balance, may be negative
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCard creates a card with both timestamps set to now
func NewCard(id, name string, balance decimal.Decimal, color string, timeProvider coreport.TimeProvider) (*Card, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValidationError("id", "must not be empty")
	}

	name, err := normalizeCardName(name)
	if err != nil {
		return nil, err
	}

	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultCardColor
	}

	now := timeProvider.Now()
	return &Card{
		ID:        id,
		Name:      name,
		Balance:   balance,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CardUpdate carries the fields to change on a card; nil fields are left untouched
type CardUpdate struct {
	Name    *string
	Balance *decimal.Decimal
	Color   *string
}

// IsEmpty reports whether the update changes nothing
func (u CardUpdate) IsEmpty() bool {
	return u.Name == nil && u.Balance == nil && u.Color == nil
}

// Apply merges the update into the card and bumps UpdatedAt.
// The card is left untouched when validation fails.
func (c *Card) Apply(update CardUpdate, timeProvider coreport.TimeProvider) error {
	next := *c

	if update.Name != nil {
		name, err := normalizeCardName(*update.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if update.Balance != nil {
		next.Balance = *update.Balance
	}
	if update.Color != nil {
		color := strings.TrimSpace(*update.Color)
		if color == "" {
			return errs.NewValidationError("color", "must not be empty")
		}
		next.Color = color
	}

	next.UpdatedAt = timeProvider.Now()
	*c = next
	return nil
}

func normalizeCardName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.NewValidationError("name", "must not be empty")
	}
	if len([]rune(name)) > MaxCardNameLength {
		return "", errs.NewValidationError("name", "is too long")
	}
	return name, nil
}
