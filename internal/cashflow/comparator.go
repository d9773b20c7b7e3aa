// Package cashflow reconciles computed cash balances against a broker's history.
package cashflow

import (
	"slices"

	"cloud.google.com/go/civil"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

// Logger receives reconciliation discrepancies.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Comparator compares a computed balance series against a historical one, one
// checkpoint at a time. Checkpoints must arrive in non-decreasing date order.
type Comparator struct {
	cursor     *Cursor
	currencies map[string]struct{}
	log        Logger
	checked    int
	mismatched int
}

// NewComparator returns a Comparator over historical. The series is not modified.
func NewComparator(historical Series, log Logger) *Comparator {
	return &Comparator{
		cursor:     NewCursor(historical),
		currencies: make(map[string]struct{}),
		log:        log,
	}
}

// Compare checks computed, the balance at the start of date, against the next
// historical checkpoint if that checkpoint is dated before date. Discrepancies are
// logged as warnings when no history is left to check, informational otherwise.
// It returns whether the history is exhausted.
func (c *Comparator) Compare(date civil.Date, computed model.Balance) bool {
	next, ok := c.cursor.Peek()
	if !ok || !next.Date.Before(date) {
		return c.cursor.Done()
	}
	c.cursor.Advance()
	c.checked++

	actual := next.Balance
	for currency := range actual {
		c.currencies[currency] = struct{}{}
	}
	for currency := range computed {
		c.currencies[currency] = struct{}{}
	}

	logf := c.log.Infof
	if c.cursor.Done() {
		logf = c.log.Warnf
	}

	reported := false
	for _, currency := range c.sortedCurrencies() {
		computedAmount := computed.GetOrZero(currency)
		actualAmount := actual.GetOrZero(currency)
		if computedAmount.Equal(actualAmount) {
			continue
		}

		if !reported {
			logf("Calculation error for %s:", next.Date)
			reported = true
			c.mismatched++
		}
		diff := model.NewMoney(currency, computedAmount.Amount.Sub(actualAmount.Amount))
		logf("* %s vs %s (%s)", computedAmount, actualAmount, diff)
	}

	return c.cursor.Done()
}

// Checked returns how many historical checkpoints have been compared.
func (c *Comparator) Checked() int {
	return c.checked
}

// Mismatched returns how many checkpoints had at least one discrepancy.
func (c *Comparator) Mismatched() int {
	return c.mismatched
}

func (c *Comparator) sortedCurrencies() []string {
	currencies := make([]string, 0, len(c.currencies))
	for currency := range c.currencies {
		currencies = append(currencies, currency)
	}
	slices.Sort(currencies)
	return currencies
}
