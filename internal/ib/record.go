package ib

import "slices"

const (
	colTable = 0
	colKind  = 1
	// colFirstField is where declared field names start on a header row and
	// where the matching values start on a data row.
	colFirstField = 2

	kindHeader = "Header"
	kindData   = "Data"
)

// record binds one data row to the field names declared by its table header.
type record struct {
	table  string
	fields []string
	values []string
}

// get returns the value of the named field.
func (r record) get(field string) (string, error) {
	if i := slices.Index(r.fields, field); i >= 0 {
		if i+colFirstField < len(r.values) {
			return r.values[i+colFirstField], nil
		}
	}
	return "", &FieldError{Table: r.table, Field: field}
}

// parseHeader returns the table name and declared field names of a header row.
func parseHeader(row []string) (name string, fields []string) {
	return row[colTable], slices.Clone(row[colFirstField:])
}
