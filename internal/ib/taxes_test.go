package ib

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

func usd(s string) model.Money {
	return model.NewMoney("USD", decimal.RequireFromString(s))
}

func TestTaxTracker_Cancellation(t *testing.T) {
	tr := newTaxTracker()
	key := model.TaxKey{Date: day(2018, 3, 1), Description: "X"}

	require.NoError(t, tr.add(key, usd("-10.00")))
	require.NoError(t, tr.add(key, usd("10.00")))
	assert.Empty(t, tr.taxes())

	// A new tax may follow the cancellation.
	require.NoError(t, tr.add(key, usd("-7")))
	taxes := tr.taxes()
	require.Len(t, taxes, 1)
	assert.True(t, taxes[key].Equal(usd("7")))
}

func TestTaxTracker_Errors(t *testing.T) {
	key := model.TaxKey{Date: day(2018, 3, 1), Description: "X"}
	other := model.TaxKey{Date: day(2018, 3, 2), Description: "X"}

	tests := []struct {
		name    string
		amounts []model.Money
		keys    []model.TaxKey
		wantErr error
	}{
		{"zero", []model.Money{usd("0")}, []model.TaxKey{key}, ErrInvalidWithholdingTax},
		{"cancel nothing", []model.Money{usd("10")}, []model.TaxKey{key}, ErrInvalidWithholdingTax},
		{"cancel mismatch", []model.Money{usd("-10"), usd("9.99")}, []model.TaxKey{key, key}, ErrInvalidWithholdingTax},
		{"cancel other key", []model.Money{usd("-10"), usd("10")}, []model.TaxKey{key, other}, ErrInvalidWithholdingTax},
		{"cancel other currency", []model.Money{usd("-10"), model.NewMoney("EUR", decimal.NewFromInt(10))}, []model.TaxKey{key, key}, ErrInvalidWithholdingTax},
		{"duplicate", []model.Money{usd("-10"), usd("-10")}, []model.TaxKey{key, key}, ErrDuplicateWithholdingTax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTaxTracker()
			var err error
			for i, amount := range tt.amounts {
				if err = tr.add(tt.keys[i], amount); err != nil {
					break
				}
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaxTracker_DistinctKeys(t *testing.T) {
	tr := newTaxTracker()
	require.NoError(t, tr.add(model.TaxKey{Date: day(2018, 3, 1), Description: "X"}, usd("-1")))
	require.NoError(t, tr.add(model.TaxKey{Date: day(2018, 3, 1), Description: "Y"}, usd("-1")))
	require.NoError(t, tr.add(model.TaxKey{Date: day(2018, 3, 2), Description: "X"}, usd("-1")))
	assert.Len(t, tr.taxes(), 3)
}
