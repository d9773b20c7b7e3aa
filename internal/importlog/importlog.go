package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Entry is one row in the import log: a statement file that was imported.
type Entry struct {
	Timestamp   time.Time
	RunID       string
	File        string
	Format      string
	PeriodStart civil.Date
	PeriodEnd   civil.Date // exclusive
	Deposits    int
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,run_id,file,format,period_start,period_end,deposits"

const (
	numFields      = 7
	logDir         = "logs"
	logFile        = "logs/import-log.csv"
	colTimestamp   = 0
	colRunID       = 1
	colFile        = 2
	colFormat      = 3
	colPeriodStart = 4
	colPeriodEnd   = 5
	colDeposits    = 6
)

// NewRunID returns a fresh identifier for one import run.
func NewRunID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colFile] = e.File
	row[colFormat] = e.Format
	row[colPeriodStart] = e.PeriodStart.String()
	row[colPeriodEnd] = e.PeriodEnd.String()
	row[colDeposits] = strconv.Itoa(e.Deposits)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}
	start, err := civil.ParseDate(record[colPeriodStart])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing period_start %q: %w", record[colPeriodStart], err)
	}
	end, err := civil.ParseDate(record[colPeriodEnd])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing period_end %q: %w", record[colPeriodEnd], err)
	}
	deposits, err := strconv.Atoi(record[colDeposits])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing deposits %q: %w", record[colDeposits], err)
	}

	return Entry{
		Timestamp:   ts,
		RunID:       record[colRunID],
		File:        record[colFile],
		Format:      record[colFormat],
		PeriodStart: start,
		PeriodEnd:   end,
		Deposits:    deposits,
	}, nil
}

// Append writes entries to <repoRoot>/logs/import-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}

	if err := writeEntries(f, needsHeader, entries); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing import log: %w", err)
	}
	return nil
}

func writeEntries(w io.Writer, header bool, entries []Entry) error {
	cw := csv.NewWriter(w)

	if header {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing import log: %w", err)
	}
	return nil
}

// Read returns all entries from <repoRoot>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
