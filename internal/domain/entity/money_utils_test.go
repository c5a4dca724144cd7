package entity

import (
	"testing"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"100.00", "100"},
			{"0.01", "0.01"},
			{"1", "1"},
			{"1.5", "1.5"},
			{"1,5", "1.5"},
			{" 42 ", "42"},
			{"-50", "-50"},
			{"1.500", "1.5"},
			{"1234567.89", "1234567.89"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				value, err := ParseAmount(tc.input)
				require.NoError(t, err)
				assert.True(t, decimal.RequireFromString(tc.expected).Equal(value), "got %s", value)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		for _, input := range []string{"", "   ", "abc", "1.2.3", "NaN", "Infinity", "1.555"} {
			t.Run(input, func(t *testing.T) {
				_, err := ParseAmount(input)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
				assert.True(t, errs.IsValidationError(err))
			})
		}
	})
}

func TestParsePositiveAmount(t *testing.T) {
	value, err := ParsePositiveAmount("500")
	require.NoError(t, err)
	assert.Equal(t, "500.00", FormatAmount(value))

	for _, input := range []string{"0", "-1", "0.00"} {
		_, err := ParsePositiveAmount(input)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount, input)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "10.10", FormatAmount(decimal.RequireFromString("10.1")))
	assert.Equal(t, "-5.00", FormatAmount(decimal.NewFromInt(-5)))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
