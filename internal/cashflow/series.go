package cashflow

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

// Checkpoint is the multi-currency cash balance at the end of a date.
type Checkpoint struct {
	Date    civil.Date
	Balance model.Balance
}

// Series is a cash balance history ordered by ascending date.
type Series []Checkpoint

// Cursor walks a Series forward. It never rewinds.
type Cursor struct {
	series Series
	pos    int
}

// NewCursor returns a Cursor positioned at the first checkpoint of s.
func NewCursor(s Series) *Cursor {
	return &Cursor{series: s}
}

// Peek returns the current checkpoint without advancing.
func (c *Cursor) Peek() (Checkpoint, bool) {
	if c.Done() {
		return Checkpoint{}, false
	}
	return c.series[c.pos], true
}

// Advance moves past the current checkpoint.
func (c *Cursor) Advance() {
	if !c.Done() {
		c.pos++
	}
}

// Done reports whether every checkpoint has been passed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.series)
}

var seriesColumns = []string{"date", "currency", "amount"}

// ReadSeries reads a balance history CSV with date, currency and amount columns,
// one row per currency per date. Columns are matched by header name.
func ReadSeries(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading series header: %w", err)
	}

	cols, err := headerColumns(header, seriesColumns)
	if err != nil {
		return nil, err
	}

	byDate := make(map[civil.Date]model.Balance)
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading series: %w", err)
		}

		date, err := civil.ParseDate(rec[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", row, rec[cols["date"]], err)
		}
		amount, err := model.ParseMoney(rec[cols["currency"]], rec[cols["amount"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		balance, ok := byDate[date]
		if !ok {
			balance = make(model.Balance)
			byDate[date] = balance
		}
		if _, dup := balance[amount.Currency]; dup {
			return nil, fmt.Errorf("row %d: duplicate %s balance on %s", row, amount.Currency, date)
		}
		balance.Deposit(amount)
	}

	series := make(Series, 0, len(byDate))
	for date, balance := range byDate {
		series = append(series, Checkpoint{Date: date, Balance: balance})
	}
	slices.SortFunc(series, func(a, b Checkpoint) int {
		return a.Date.DaysSince(b.Date)
	})
	return series, nil
}

// headerColumns maps each required column to its index in header.
func headerColumns(header, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	for _, name := range required {
		i := slices.IndexFunc(header, func(h string) bool {
			return strings.EqualFold(strings.TrimSpace(h), name)
		})
		if i < 0 {
			return nil, fmt.Errorf("required field %q not found in CSV header", name)
		}
		cols[name] = i
	}
	return cols, nil
}
