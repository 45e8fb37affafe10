// internal/bankio/money.go
package bankio

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// InputError is a message explaining why operator input was refused.
type InputError string

func (e InputError) Error() string { return string(e) }

const (
	ErrNoInput          InputError = "Invalid input - no input detected."
	ErrWhitespace       InputError = "Invalid input. No whitespace characters are allowed"
	ErrNotANumber       InputError = "Invalid input. Please enter a number."
	ErrNotAnOption      InputError = "Invalid input. Please choose one of the available options."
	ErrNegativeID       InputError = "Invalid input. IDs cannot be negative."
	ErrTooManyDecimals  InputError = "Input has more than 2 characters after the decimal point."
	ErrSecondDecimal    InputError = "Input has a second decimal point."
	ErrMisplacedDollar  InputError = "'$' character is only valid as the first character."
	ErrNotPositive      InputError = "Invalid input. Amount must be greater than zero."
	ErrAmountTooLarge   InputError = "Invalid input. Amount is too large."
	invalidCharacterMsg            = "Input contains an invalid character: "
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// ParseMoney reads an amount such as "$12.34", "12" or "0.5" into cents.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNoInput
	}
	body := strings.TrimPrefix(s, "$")

	dots, decimals := 0, 0
	for _, r := range body {
		switch {
		case r == '$':
			return 0, ErrMisplacedDollar
		case r == '.':
			dots++
			if dots > 1 {
				return 0, ErrSecondDecimal
			}
		case r >= '0' && r <= '9':
			if dots == 1 {
				decimals++
				if decimals > 2 {
					return 0, ErrTooManyDecimals
				}
			}
		default:
			return 0, InputError(invalidCharacterMsg + string(r))
		}
	}

	digits := strings.Trim(body, ".")
	if digits == "" {
		return 0, ErrNotANumber
	}
	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	body = strings.TrimSuffix(body, ".")

	amount, err := decimal.NewFromString(body)
	if err != nil {
		return 0, ErrNotANumber
	}
	cents := amount.Shift(2)
	if !cents.IsPositive() {
		return 0, ErrNotPositive
	}
	if cents.GreaterThan(maxCents) {
		return 0, ErrAmountTooLarge
	}
	return cents.IntPart(), nil
}

// FormatMoney renders cents as "$123.45".
func FormatMoney(cents int64) string {
	return "$" + decimal.New(cents, -2).StringFixed(2)
}
