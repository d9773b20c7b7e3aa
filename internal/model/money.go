package model

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount in a single currency.
type Money struct {
	Currency string
	Amount   decimal.Decimal
}

// NewMoney returns Money for the given currency code and amount.
func NewMoney(currency string, amount decimal.Decimal) Money {
	return Money{Currency: currency, Amount: amount}
}

// ZeroMoney returns a zero amount of currency.
func ZeroMoney(currency string) Money {
	return Money{Currency: currency, Amount: decimal.Zero}
}

// ParseMoney parses a decimal amount such as "-10.50" in the given currency.
func ParseMoney(currency, s string) (Money, error) {
	if currency == "" {
		return Money{}, fmt.Errorf("parsing amount %q: empty currency", s)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Money{Currency: currency, Amount: amount}, nil
}

// ParsePositiveMoney is ParseMoney that also rejects zero and negative amounts.
func ParsePositiveMoney(currency, s string) (Money, error) {
	m, err := ParseMoney(currency, s)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, fmt.Errorf("amount %s must be positive", m)
	}
	return m, nil
}

// Equal reports whether m and n have the same currency and the same value.
func (m Money) Equal(n Money) bool {
	return m.Currency == n.Currency && m.Amount.Equal(n.Amount)
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

// Neg returns m with its sign flipped.
func (m Money) Neg() Money { return Money{Currency: m.Currency, Amount: m.Amount.Neg()} }

// Add returns m+n. Both must share a currency.
func (m Money) Add(n Money) (Money, error) {
	if m.Currency != n.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.Currency, n.Currency)
	}
	return Money{Currency: m.Currency, Amount: m.Amount.Add(n.Amount)}, nil
}

// Sub returns m-n. Both must share a currency.
func (m Money) Sub(n Money) (Money, error) {
	return m.Add(n.Neg())
}

// String returns the exact amount followed by the currency code, e.g. "-10.5 USD".
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

// Format renders m using the currency's symbol and fraction digits, e.g. "$1,234.50".
// Unknown currencies fall back to String.
func (m Money) Format() string {
	cur := money.GetCurrency(m.Currency)
	if cur == nil {
		return m.String()
	}
	minor := m.Amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
