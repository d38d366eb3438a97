package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/storksoft/cashtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOperations_GroupsByDay(t *testing.T) {
	ops := []model.ListOperation{
		{
			ID:            "op-1",
			Category:      &model.SimpleCategory{Name: "Salary"},
			AccountIncome: &model.SimpleAccount{Name: "Bank"},
			OperationDate: "2024-03-14T10:00:00Z",
			Description:   "March salary",
			Income:        decimal.RequireFromString("1500"),
		},
		{
			ID:             "op-2",
			Category:       &model.SimpleCategory{Name: "Groceries"},
			AccountOutcome: &model.SimpleAccount{Name: "Wallet"},
			OperationDate:  "2024-03-15T12:00:00Z",
			Description:    "Weekly shop",
			Outcome:        decimal.RequireFromString("42.10"),
		},
	}

	var buf bytes.Buffer
	RenderOperations(&buf, ops)
	out := buf.String()

	assert.Contains(t, out, "op-1")
	assert.Contains(t, out, "op-2")
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "+1500")
	assert.Contains(t, out, "-42.1")

	// Newest day renders first.
	assert.Less(t, strings.Index(out, "op-2"), strings.Index(out, "op-1"))
}

func TestRenderOperations_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderOperations(&buf, nil)
	assert.Contains(t, buf.String(), "No operations found")
}

func TestRenderAccounts(t *testing.T) {
	accounts := []model.ListAccount{
		{
			ID:             "a1",
			Name:           "Wallet",
			Type:           model.AccountCash,
			Currency:       model.Currency{DisplayName: "US Dollar", Symbol: "$"},
			CurrentBalance: decimal.RequireFromString("123.45"),
		},
	}

	var buf bytes.Buffer
	RenderAccounts(&buf, accounts)
	out := buf.String()

	assert.Contains(t, out, "Wallet")
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "123.45 $")
}

func TestRenderCategories(t *testing.T) {
	categories := []model.ListCategory{
		{ID: "c1", Name: "Groceries", ForOutcome: true},
	}

	var buf bytes.Buffer
	RenderCategories(&buf, categories)

	assert.Contains(t, buf.String(), "Groceries")
}

func TestRenderUser(t *testing.T) {
	first := "Alice"
	user := model.User{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: &first,
	}

	var buf bytes.Buffer
	RenderUser(&buf, user)
	out := buf.String()

	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "Alice")
}

func TestReader_ReadLine(t *testing.T) {
	reader := NewReader(strings.NewReader("  hello  \n"))

	line, err := reader.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
}

func TestReader_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewReader(blockingReader{})
	_, err := reader.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestReader_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes word", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "default is no", input: "\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewReader(strings.NewReader(tt.input))

			var buf bytes.Buffer
			got, err := reader.Confirm(context.Background(), &buf, "Delete operation op-1?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, buf.String(), "Delete operation op-1?")
		})
	}
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
