package ib

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// RowReader yields the rows of a statement file, returning io.EOF after the last one.
// *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewRowReader returns a csv.Reader configured for statement exports: rows
// have varying field counts and the file may start with a byte order mark.
func NewRowReader(r io.Reader) *csv.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func formatRow(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
