package ib

import (
	"fmt"
	"maps"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

// taxTracker pairs withheld taxes with the entries that cancel them.
//
// A withheld tax is a negative amount. A correction is reported as a positive
// amount for the same date and description, usually followed by a new negative one.
type taxTracker struct {
	pending map[model.TaxKey]model.Money
}

func newTaxTracker() *taxTracker {
	return &taxTracker{pending: make(map[model.TaxKey]model.Money)}
}

func (t *taxTracker) add(key model.TaxKey, tax model.Money) error {
	if tax.IsZero() {
		return fmt.Errorf("%w: %s", ErrInvalidWithholdingTax, tax)
	}

	if tax.IsPositive() {
		cancelled, ok := t.pending[key]
		if !ok {
			return fmt.Errorf("%w: %s cancels nothing on %s / %q", ErrInvalidWithholdingTax, tax, key.Date, key.Description)
		}
		if !cancelled.Equal(tax) {
			return fmt.Errorf("%w: %s doesn't cancel %s on %s / %q", ErrInvalidWithholdingTax, tax, cancelled, key.Date, key.Description)
		}
		delete(t.pending, key)
		return nil
	}

	if _, ok := t.pending[key]; ok {
		return fmt.Errorf("%w: %s / %q", ErrDuplicateWithholdingTax, key.Date, key.Description)
	}
	t.pending[key] = tax.Neg()
	return nil
}

// taxes returns the withheld taxes that were never cancelled.
func (t *taxTracker) taxes() map[model.TaxKey]model.Money {
	return maps.Clone(t.pending)
}
