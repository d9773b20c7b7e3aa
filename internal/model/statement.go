package model

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Period is the half-open date interval [Start, End) a statement covers.
type Period struct {
	Start civil.Date
	End   civil.Date
}

// Days returns the number of days covered.
func (p Period) Days() int {
	return p.End.DaysSince(p.Start)
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s)", p.Start, p.End)
}

// Deposit is a cash deposit posted to the account.
type Deposit struct {
	Date   civil.Date
	Amount Money
}

// TaxKey identifies a withholding tax event.
type TaxKey struct {
	Date        civil.Date
	Description string
}

// WithholdingTax is a tax amount withheld at source. Amount is the positive
// magnitude withheld.
type WithholdingTax struct {
	Date        civil.Date
	Description string
	Amount      Money
}
