package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/weddingledger/planner/internal/encoding"
)

// Row is one parsed gift line.
type Row struct {
	Line   int
	Name   string
	Amount int64
	Date   time.Time
	Notes  string
}

// RowError describes a line that was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

const sniffLines = 10

// ErrUnreadable is returned when the upload is not a readable delimited file.
var ErrUnreadable = errors.New("unreadable gift list")

var dateLayouts = []string{"02-01-2006", "02/01/2006", "02.01.2006", "2006-01-02", "2/1/2006"}

// Parse reads a gift list. Lines without a name or with an unreadable amount
// are reported in the second return value. Missing dates default to
// fallback.
func Parse(r io.Reader, fallback time.Time) ([]Row, []RowError, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: detect encoding: %w", ErrUnreadable, err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read file: %w", ErrUnreadable, err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = detectDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read csv: %w", ErrUnreadable, err)
	}

	cols := positional
	start := 0

	for i, rec := range records {
		if l, ok := detectHeader(rec); ok {
			cols, start = l, i+1
			break
		}
	}

	var (
		rows    []Row
		skipped []RowError
	)

	for i, rec := range records[start:] {
		line := start + i + 1

		if blank(rec) {
			continue
		}

		name := cols.cell(rec, colName)
		if name == "" {
			skipped = append(skipped, RowError{Line: line, Reason: "missing name"})
			continue
		}

		amount, err := parseAmount(cols.cell(rec, colAmount))
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Reason: err.Error()})
			continue
		}

		date, ok := parseDate(cols.cell(rec, colDate))
		if !ok {
			date = fallback
		}

		rows = append(rows, Row{
			Line:   line,
			Name:   name,
			Amount: amount,
			Date:   date,
			Notes:  cols.cell(rec, colNotes),
		})
	}

	return rows, skipped, nil
}

// detectDelimiter picks ';', ',' or tab by counting them over the first
// lines. European exports use ';' because ',' is their decimal separator.
func detectDelimiter(data string) rune {
	var semicolons, commas, tabs int

	for i, line := range strings.SplitN(data, "\n", sniffLines+1) {
		if i == sniffLines {
			break
		}

		semicolons += strings.Count(line, ";")
		commas += strings.Count(line, ",")
		tabs += strings.Count(line, "\t")
	}

	switch {
	case semicolons > 0 && semicolons >= commas:
		return ';'
	case tabs > commas:
		return '\t'
	default:
		return ','
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if trim(cell) != "" {
			return false
		}
	}

	return true
}
