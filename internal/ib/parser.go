// Package ib parses Interactive Brokers activity statements exported as CSV.
//
// A statement file holds many tables. Each row starts with the table name and a
// row kind; a "Header" row declares the field names of the data rows that follow.
package ib

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/brokerstatement/internal/statement"
)

// DefaultNAVCurrency is the currency net asset values are assumed to be
// reported in. The table itself does not name one.
const DefaultNAVCurrency = "USD"

// Format is the importer format name of this parser.
const Format = "ib"

// Parser parses statement files. A Parser holds no per-file state and may be reused.
type Parser struct {
	navCurrency string
	log         zerolog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithNAVCurrency overrides DefaultNAVCurrency.
func WithNAVCurrency(currency string) Option {
	return func(p *Parser) { p.navCurrency = currency }
}

// WithLogger sets the logger used for trace output.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// NewParser returns a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{navCurrency: DefaultNAVCurrency, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Format returns the parser name.
func (p *Parser) Format() string { return Format }

// Parse reads a statement export.
func (p *Parser) Parse(r io.Reader) (*statement.Statement, error) {
	return p.ParseRows(NewRowReader(r))
}

type phase int

const (
	phaseScanning phase = iota // outside of any table
	phaseRecord                // holding a row that is not classified yet
	phaseTable                 // holding the header row of the current table
	phaseDone
)

// dispatchState is the dispatch loop's position. row is set in phaseRecord and phaseTable.
type dispatchState struct {
	phase phase
	row   []string
}

// ParseRows consumes rows until io.EOF and returns the finalized statement.
// The first error aborts the parse.
func (p *Parser) ParseRows(rows RowReader) (*statement.Statement, error) {
	s := newParserState(p.navCurrency)

	st := dispatchState{phase: phaseScanning}
	for st.phase != phaseDone {
		var err error
		switch st.phase {
		case phaseScanning:
			st, err = p.scan(rows)
		case phaseRecord:
			st, err = p.classify(st.row)
		case phaseTable:
			st, err = p.consumeTable(s, rows, st.row)
		}
		if err != nil {
			return nil, err
		}
	}

	s.builder.SetWithholdingTaxes(s.taxes.taxes())
	result, err := s.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid statement: %w", err)
	}
	return result, nil
}

func (p *Parser) scan(rows RowReader) (dispatchState, error) {
	row, err := readRow(rows)
	if errors.Is(err, io.EOF) {
		return dispatchState{phase: phaseDone}, nil
	}
	if err != nil {
		return dispatchState{}, err
	}
	return dispatchState{phase: phaseRecord, row: row}, nil
}

// classify decides what a row outside of a table starts.
func (p *Parser) classify(row []string) (dispatchState, error) {
	if len(row) < colFirstField {
		return dispatchState{}, fmt.Errorf("%w: %s", ErrInvalidRecord, formatRow(row))
	}

	switch row[colKind] {
	case kindHeader:
		return dispatchState{phase: phaseTable, row: row}, nil
	case "":
		p.log.Trace().Str("row", formatRow(row)).Msg("headerless record")
		return dispatchState{phase: phaseScanning}, nil
	default:
		return dispatchState{}, fmt.Errorf("%w: %s", ErrInvalidRecord, formatRow(row))
	}
}

// consumeTable feeds the rows following header to the table's handler. It
// stops at the first row that belongs to another table or starts a new header.
func (p *Parser) consumeTable(s *parserState, rows RowReader, header []string) (dispatchState, error) {
	name, fields := parseHeader(header)
	handler, known := handlerFor(name)
	dataTypes := handler.dataTypes()

	log := p.log.With().Str("table", name).Logger()
	log.Trace().Strs("fields", fields).Msg("header")
	if !known {
		log.Debug().Msg("skipping unknown table")
	}

	for {
		row, err := readRow(rows)
		if errors.Is(err, io.EOF) {
			return dispatchState{phase: phaseDone}, nil
		}
		if err != nil {
			return dispatchState{}, err
		}

		if len(row) < colFirstField {
			return dispatchState{}, fmt.Errorf("%w: %s", ErrInvalidRecord, formatRow(row))
		}
		if row[colTable] != name {
			return dispatchState{phase: phaseRecord, row: row}, nil
		}
		if row[colKind] == kindHeader {
			return dispatchState{phase: phaseTable, row: row}, nil
		}

		if dataTypes != nil && !slices.Contains(dataTypes, row[colKind]) {
			return dispatchState{}, fmt.Errorf("%w: %s", ErrInvalidDataType, formatRow(row))
		}

		rec := record{table: name, fields: fields, values: row}
		if err := handler.parse(s, rec); err != nil {
			return dispatchState{}, fmt.Errorf("parsing (%s) record: %w", formatRow(row), err)
		}
	}
}

func readRow(rows RowReader) ([]string, error) {
	row, err := rows.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return row, err
}
