package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// MXN is the only currency the ledger books in
const MXN Currency = "MXN"

// Scale is the number of fractional digits kept for money amounts
const Scale int32 = 2

var (
	ErrEmptyAmount     = errors.New("amount cannot be empty")
	ErrTooManyDecimals = errors.New("amount cannot have more than 2 decimal places")
)

// ParseAmount parses a decimal money amount, rejecting more than two fractional digits
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string: %w", err)
	}
	if d.Exponent() < -Scale && !d.Equal(d.Round(Scale)) {
		return decimal.Zero, ErrTooManyDecimals
	}
	return d.Round(Scale), nil
}

// RoundAmount rounds to the money scale
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Money is an immutable MXN amount that always renders with two decimals
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money rounded to the money scale
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: RoundAmount(amount)}
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(s string) (Money, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d}, nil
}

// Zero returns a zero amount
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency always returns MXN
func (m Money) Currency() Currency {
	return MXN
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Equals compares two amounts
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with two decimals
func (m Money) String() string {
	return m.amount.StringFixed(Scale)
}

// MarshalJSON renders the amount as a fixed two-decimal string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	d, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	m.amount = d
	return nil
}

// Value implements driver.Valuer
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	m.amount = RoundAmount(d)
	return nil
}
