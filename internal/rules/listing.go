package rules

import (
	"sort"
	"time"

	"github.com/storksoft/cashtrack/internal/model"
)

var operationDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseOperationDate parses a backend operation date. The backend serializes
// ISO-8601 instants, but older records may carry bare dates.
func ParseOperationDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range operationDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// SortByDateDescending returns a new slice ordered by operation date,
// newest first. The sort is stable, so operations sharing a timestamp keep
// their input order, and operations with unparseable dates sink to the end.
// The input is not mutated.
func SortByDateDescending(ops []model.ListOperation) []model.ListOperation {
	sorted := make([]model.ListOperation, len(ops))
	copy(sorted, ops)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, errI := ParseOperationDate(sorted[i].OperationDate)
		tj, errJ := ParseOperationDate(sorted[j].OperationDate)
		if errI != nil || errJ != nil {
			return errI == nil && errJ != nil
		}
		return ti.After(tj)
	})

	return sorted
}

// DayGroup is one calendar day of operations, in the order they arrived.
type DayGroup struct {
	Day        time.Time
	Operations []model.ListOperation
	Unknown    bool
}

// Key returns the grouping key, or "Unknown" for the unknown-date bucket.
func (g DayGroup) Key() string {
	if g.Unknown {
		return "Unknown"
	}
	return g.Day.Format("2006-01-02")
}

// Label returns the header shown above the group in listings.
func (g DayGroup) Label() string {
	if g.Unknown {
		return "Unknown date"
	}
	return g.Day.Format("Monday, Jan 2, 2006")
}

// GroupByCalendarDay buckets operations by the local calendar day of their
// operation date. Group order follows the order in which days first appear
// in the input (date-descending when the input was sorted upstream), and
// operations keep their relative order within a group. Operations with an
// unparseable date land in a distinguished unknown group that is always
// last.
func GroupByCalendarDay(ops []model.ListOperation) []DayGroup {
	var groups []DayGroup
	var unknown *DayGroup
	index := make(map[string]int)

	for _, op := range ops {
		parsed, err := ParseOperationDate(op.OperationDate)
		if err != nil {
			if unknown == nil {
				unknown = &DayGroup{Unknown: true}
			}
			unknown.Operations = append(unknown.Operations, op)
			continue
		}

		local := parsed.Local()
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
		key := day.Format("2006-01-02")

		if i, ok := index[key]; ok {
			groups[i].Operations = append(groups[i].Operations, op)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, DayGroup{Day: day, Operations: []model.ListOperation{op}})
	}

	if unknown != nil {
		groups = append(groups, *unknown)
	}

	return groups
}
