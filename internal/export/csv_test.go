package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/storksoft/cashtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOperations() []model.ListOperation {
	return []model.ListOperation{
		{
			ID:             "op-1",
			Category:       &model.SimpleCategory{ID: "c1", Name: "Groceries"},
			AccountOutcome: &model.SimpleAccount{ID: "a1", Name: "Wallet"},
			OperationDate:  "2024-03-15T00:00:00Z",
			Description:    "Weekly shop",
			Place:          &model.SimplePlace{ID: "p1", Description: "Corner Shop"},
			Outcome:        decimal.RequireFromString("42.10"),
		},
		{
			ID:            "op-2",
			Category:      &model.SimpleCategory{ID: "c2", Name: "Salary"},
			AccountIncome: &model.SimpleAccount{ID: "a2", Name: "Bank"},
			OperationDate: "2024-03-14T00:00:00Z",
			Description:   "March salary",
			Income:        decimal.RequireFromString("1500"),
		},
		{
			ID:             "op-3",
			Category:       &model.SimpleCategory{ID: "c3", Name: "Transfers"},
			AccountOutcome: &model.SimpleAccount{ID: "a2", Name: "Bank"},
			AccountIncome:  &model.SimpleAccount{ID: "a1", Name: "Wallet"},
			OperationDate:  "2024-03-13T00:00:00Z",
			Income:         decimal.RequireFromString("100"),
			Outcome:        decimal.RequireFromString("100"),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleOperations()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Date,Type,Category,Account,Place,Description,Amount", lines[0])
	assert.Equal(t, "2024-03-15T00:00:00Z,Expense,Groceries,Wallet,Corner Shop,Weekly shop,-42.1", lines[1])
	assert.Equal(t, "2024-03-14T00:00:00Z,Income,Salary,Bank,,March salary,1500", lines[2])
	assert.Contains(t, lines[3], "Transfer")
	assert.Contains(t, lines[3], "Bank -> Wallet")
}

func TestDeriveType(t *testing.T) {
	ops := sampleOperations()
	assert.Equal(t, model.OperationOutcome, DeriveType(ops[0]))
	assert.Equal(t, model.OperationIncome, DeriveType(ops[1]))
	assert.Equal(t, model.OperationTransfer, DeriveType(ops[2]))
}

func TestSignedAmount(t *testing.T) {
	ops := sampleOperations()
	assert.True(t, SignedAmount(ops[0]).Equal(decimal.RequireFromString("-42.10")))
	assert.True(t, SignedAmount(ops[1]).Equal(decimal.RequireFromString("1500")))
	assert.True(t, SignedAmount(ops[2]).IsZero())
}

func TestPrepareRows_GroupsByDay(t *testing.T) {
	rows := prepareRows(sampleOperations())

	require.NotEmpty(t, rows)
	assert.Equal(t, "Operations", rows[0][0])

	var headers int
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Date" {
			headers++
		}
	}
	assert.Equal(t, 3, headers, "one header per calendar day")
}
