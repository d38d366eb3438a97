package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseCSV reads a simple date,amount,description statement. The first row
// may be a header. Negative amounts are debits, positive are credits,
// matching bank export conventions.
func ParseCSV(reader io.Reader) ([]Entry, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	var entries []Entry
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected at least date and amount, got %d fields", i+1, len(record))
		}

		date, dateErr := parseCSVDate(record[0])
		if dateErr != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("row %d: %w", i+1, dateErr)
		}

		amount, amountErr := decimal.NewFromString(strings.TrimSpace(record[1]))
		if amountErr != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", i+1, record[1])
		}

		entry := Entry{Date: date, Amount: amount, Credit: amount.IsPositive()}
		if amount.IsNegative() {
			entry.Amount = amount.Neg()
		}
		if len(record) > 2 {
			entry.Description = strings.TrimSpace(record[2])
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

var csvDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02.01.2006",
}

func parseCSVDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	var err error
	for _, layout := range csvDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
