// Package runlog keeps a local CSV history of seed runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Months    int
	Items     int
	Generated int
	Created   int
	Patterns  int
	Outcome   string // "ok", "dry-run", or an error summary
}

// Header is the CSV header for seed-runs.csv.
const Header = "timestamp,run_id,months,items,generated,created,patterns,outcome"

const (
	numFields    = 8
	colTimestamp = 0
	colRunID     = 1
	colMonths    = 2
	colItems     = 3
	colGenerated = 4
	colCreated   = 5
	colPatterns  = 6
	colOutcome   = 7
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colMonths] = strconv.Itoa(e.Months)
	row[colItems] = strconv.Itoa(e.Items)
	row[colGenerated] = strconv.Itoa(e.Generated)
	row[colCreated] = strconv.Itoa(e.Created)
	row[colPatterns] = strconv.Itoa(e.Patterns)
	row[colOutcome] = e.Outcome
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

	ints := make([]int, 5)
	for i, col := range []int{colMonths, colItems, colGenerated, colCreated, colPatterns} {
		v, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing field %d %q: %w", col, record[col], err)
		}
		ints[i] = v
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Months:    ints[0],
		Items:     ints[1],
		Generated: ints[2],
		Created:   ints[3],
		Patterns:  ints[4],
		Outcome:   record[colOutcome],
	}, nil
}

// Append writes entries to the log file at path, creating it with a
// header if needed.
func Append(path string, entries []Entry) error {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Read returns all entries from the log file at path. A missing file
// yields an empty slice.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
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
