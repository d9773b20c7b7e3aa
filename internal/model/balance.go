package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Balance maps a currency code to the amount held in that currency.
type Balance map[string]decimal.Decimal

// NewBalance builds a Balance from amounts, summing repeated currencies.
func NewBalance(amounts ...Money) Balance {
	b := make(Balance, len(amounts))
	for _, m := range amounts {
		b.Deposit(m)
	}
	return b
}

// Deposit adds m to the amount held in m's currency.
func (b Balance) Deposit(m Money) {
	b[m.Currency] = b[m.Currency].Add(m.Amount)
}

// Get returns the amount held in currency and whether the currency is present.
func (b Balance) Get(currency string) (Money, bool) {
	amount, ok := b[currency]
	if !ok {
		return Money{}, false
	}
	return NewMoney(currency, amount), true
}

// GetOrZero is Get with a zero amount for missing currencies.
func (b Balance) GetOrZero(currency string) Money {
	if m, ok := b.Get(currency); ok {
		return m
	}
	return ZeroMoney(currency)
}

// Currencies returns the currency codes held, sorted.
func (b Balance) Currencies() []string {
	codes := make([]string, 0, len(b))
	for c := range b {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}
