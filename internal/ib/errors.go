package ib

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecord marks a row that is too short or appears outside of any table.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidDataType marks a data row whose kind tag the table does not accept.
	ErrInvalidDataType = errors.New("invalid data record type")
	// ErrInvalidWithholdingTax marks a zero tax or a cancellation that matches nothing pending.
	ErrInvalidWithholdingTax = errors.New("invalid withholding tax")
	// ErrDuplicateWithholdingTax marks a second tax for the same date and description.
	ErrDuplicateWithholdingTax = errors.New("duplicate withholding tax")
	// ErrInvalidPeriod marks a malformed or inverted statement period.
	ErrInvalidPeriod = errors.New("invalid statement period")
)

// FieldError is returned when a table does not declare a field a handler needs.
type FieldError struct {
	Table string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%q record doesn't have %q field", e.Table, e.Field)
}
