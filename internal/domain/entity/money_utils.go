package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the maximum number of decimal places accepted from user input
const MaxDecimalPlaces = 2

// ParseAmount parses a signed decimal amount entered by a user.
// Both "." and "," are accepted as the decimal separator.
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	amount = strings.ReplaceAll(amount, ",", ".")

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}

	if -value.Exponent() > MaxDecimalPlaces && !value.Equal(value.Round(MaxDecimalPlaces)) {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	return value, nil
}

// ParsePositiveAmount parses an amount that must be strictly greater than zero
func ParsePositiveAmount(amount string) (decimal.Decimal, error) {
	value, err := ParseAmount(amount)
	if err != nil {
		return decimal.Zero, err
	}
	if err := ValidatePositiveAmount(value); err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

// ValidatePositiveAmount rejects zero and negative transaction amounts.
// The direction of a transaction is carried by its type, never by the sign.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", errs.ErrInvalidAmount, amount.String())
	}
	return nil
}

// FormatAmount renders an amount with exactly two decimal places
// Example: 10.1 becomes "10.10", -5 becomes "-5.00"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}
