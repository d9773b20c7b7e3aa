package statement

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

// ErrIncomplete is returned by Build when a required field was never set.
var ErrIncomplete = errors.New("statement is incomplete")

// Statement is a finalized broker statement.
type Statement struct {
	Period           model.Period
	TotalValue       *model.Money // nil if the statement reports no net asset value
	Deposits         []model.Deposit
	Tickers          map[string]string // symbol -> description
	WithholdingTaxes []model.WithholdingTax
}

// Builder accumulates statement fields while a statement file is parsed.
type Builder struct {
	period     *model.Period
	totalValue *model.Money
	deposits   []model.Deposit
	tickers    map[string]string
	taxes      map[model.TaxKey]model.Money
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{tickers: make(map[string]string)}
}

// SetPeriod sets the statement period. It may only be set once.
func (b *Builder) SetPeriod(p model.Period) error {
	if b.period != nil {
		return fmt.Errorf("duplicate statement period: %s and %s", *b.period, p)
	}
	b.period = &p
	return nil
}

// AddTotalValue adds m to the running net asset value.
func (b *Builder) AddTotalValue(m model.Money) error {
	if b.totalValue == nil {
		b.totalValue = &m
		return nil
	}
	total, err := b.totalValue.Add(m)
	if err != nil {
		return fmt.Errorf("adding to total value: %w", err)
	}
	b.totalValue = &total
	return nil
}

// AddDeposit appends a deposit in the order encountered.
func (b *Builder) AddDeposit(d model.Deposit) {
	b.deposits = append(b.deposits, d)
}

// SetTicker records the description of symbol. Later calls overwrite earlier ones.
func (b *Builder) SetTicker(symbol, description string) {
	b.tickers[symbol] = description
}

// SetWithholdingTaxes records the resolved withholding tax set.
func (b *Builder) SetWithholdingTaxes(taxes map[model.TaxKey]model.Money) {
	b.taxes = taxes
}

// Build validates the accumulated fields and returns the Statement.
func (b *Builder) Build() (*Statement, error) {
	if b.period == nil {
		return nil, fmt.Errorf("%w: period is not set", ErrIncomplete)
	}

	taxes := make([]model.WithholdingTax, 0, len(b.taxes))
	for key, amount := range b.taxes {
		taxes = append(taxes, model.WithholdingTax{
			Date:        key.Date,
			Description: key.Description,
			Amount:      amount,
		})
	}
	slices.SortFunc(taxes, func(x, y model.WithholdingTax) int {
		switch {
		case x.Date.Before(y.Date):
			return -1
		case x.Date.After(y.Date):
			return 1
		}
		return strings.Compare(x.Description, y.Description)
	})

	var total *model.Money
	if b.totalValue != nil {
		t := *b.totalValue
		total = &t
	}

	return &Statement{
		Period:           *b.period,
		TotalValue:       total,
		Deposits:         slices.Clone(b.deposits),
		Tickers:          maps.Clone(b.tickers),
		WithholdingTaxes: taxes,
	}, nil
}
