package rules

import (
	"testing"
	"time"

	"github.com/storksoft/cashtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func op(id, date string) model.ListOperation {
	return model.ListOperation{ID: id, OperationDate: date}
}

func ids(ops []model.ListOperation) []string {
	out := make([]string, len(ops))
	for i, o := range ops {
		out[i] = o.ID
	}
	return out
}

func TestSortByDateDescending(t *testing.T) {
	input := []model.ListOperation{
		op("a", "2024-01-01T10:00:00Z"),
		op("b", "2024-03-01T10:00:00Z"),
		op("c", "2024-02-01T10:00:00Z"),
	}

	sorted := SortByDateDescending(input)
	assert.Equal(t, []string{"b", "c", "a"}, ids(sorted))

	// Input order is untouched.
	assert.Equal(t, []string{"a", "b", "c"}, ids(input))
}

func TestSortByDateDescending_Idempotent(t *testing.T) {
	input := []model.ListOperation{
		op("a", "2024-01-02T00:00:00Z"),
		op("b", "2024-01-02T00:00:00Z"),
		op("c", "2024-01-01T00:00:00Z"),
		op("d", "not-a-date"),
		op("e", "2024-01-03T00:00:00Z"),
	}

	once := SortByDateDescending(input)
	twice := SortByDateDescending(once)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSortByDateDescending_TiesKeepInputOrder(t *testing.T) {
	input := []model.ListOperation{
		op("first", "2024-01-02T12:00:00Z"),
		op("second", "2024-01-02T12:00:00Z"),
		op("third", "2024-01-02T12:00:00Z"),
	}

	sorted := SortByDateDescending(input)
	assert.Equal(t, []string{"first", "second", "third"}, ids(sorted))
}

func TestSortByDateDescending_UnparseableDatesSinkToEnd(t *testing.T) {
	input := []model.ListOperation{
		op("bad", "garbage"),
		op("new", "2024-06-01T00:00:00Z"),
		op("old", "2020-06-01T00:00:00Z"),
	}

	sorted := SortByDateDescending(input)
	assert.Equal(t, []string{"new", "old", "bad"}, ids(sorted))
}

func TestGroupByCalendarDay(t *testing.T) {
	// Already sorted descending: two operations on Jan 2, one on Jan 1.
	input := []model.ListOperation{
		op("x", "2024-01-02T18:30:00Z"),
		op("y", "2024-01-02T09:00:00Z"),
		op("z", "2024-01-01T12:00:00Z"),
	}

	groups := GroupByCalendarDay(input)
	require.Len(t, groups, 2)

	assert.Equal(t, []string{"x", "y"}, ids(groups[0].Operations))
	assert.Equal(t, []string{"z"}, ids(groups[1].Operations))
	assert.False(t, groups[0].Unknown)

	day := func(g DayGroup) string { return g.Day.Format("2006-01-02") }
	wantFirst := mustParse(t, "2024-01-02T18:30:00Z").Local().Format("2006-01-02")
	assert.Equal(t, wantFirst, day(groups[0]))
}

func TestGroupByCalendarDay_UnknownBucketIsLast(t *testing.T) {
	input := []model.ListOperation{
		op("bad", "???"),
		op("a", "2024-01-02T00:00:00Z"),
		op("b", "2024-01-01T00:00:00Z"),
	}

	groups := GroupByCalendarDay(input)
	require.Len(t, groups, 3)

	last := groups[len(groups)-1]
	assert.True(t, last.Unknown)
	assert.Equal(t, "Unknown", last.Key())
	assert.Equal(t, "Unknown date", last.Label())
	assert.Equal(t, []string{"bad"}, ids(last.Operations))
}

func TestGroupByCalendarDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByCalendarDay(nil))
}

func TestParseOperationDate(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{raw: "2024-01-02T15:04:05Z"},
		{raw: "2024-01-02T15:04:05.123Z"},
		{raw: "2024-01-02T15:04:05"},
		{raw: "2024-01-02"},
		{raw: "02.01.2024", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := ParseOperationDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func mustParse(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	return parsed
}
