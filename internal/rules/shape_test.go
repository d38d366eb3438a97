package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/storksoft/cashtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		typ  model.OperationType
		want FieldRequirements
	}{
		{
			name: "outcome needs only source",
			typ:  model.OperationOutcome,
			want: FieldRequirements{NeedsSource: true, NeedsDestination: false, NeedsPlace: true},
		},
		{
			name: "income needs only destination",
			typ:  model.OperationIncome,
			want: FieldRequirements{NeedsSource: false, NeedsDestination: true, NeedsPlace: true},
		},
		{
			name: "transfer needs both and no place",
			typ:  model.OperationTransfer,
			want: FieldRequirements{NeedsSource: true, NeedsDestination: true, NeedsPlace: false},
		},
		{
			name: "own needs only destination",
			typ:  model.OperationOwn,
			want: FieldRequirements{NeedsSource: false, NeedsDestination: true, NeedsPlace: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiredFields(tt.typ))
		})
	}
}

func validDraft(typ model.OperationType) Draft {
	d := Draft{
		Type:       typ,
		CategoryID: "cat-1",
		Amount:     "100",
		Date:       "2024-03-15",
	}
	req := RequiredFields(typ)
	if req.NeedsSource {
		d.SourceAccountID = "acc-src"
	}
	if req.NeedsDestination {
		d.DestinationAccountID = "acc-dst"
	}
	return d
}

func TestBuildPayload_AmountMapping(t *testing.T) {
	tests := []struct {
		name        string
		draft       Draft
		wantIncome  string
		wantOutcome string
	}{
		{
			name:       "income amount lands on destination side",
			draft:      validDraft(model.OperationIncome),
			wantIncome: "100",
		},
		{
			name:       "own deposit amount lands on destination side",
			draft:      validDraft(model.OperationOwn),
			wantIncome: "100",
		},
		{
			name:        "outcome amount lands on source side",
			draft:       validDraft(model.OperationOutcome),
			wantOutcome: "100",
		},
		{
			name: "transfer with blank received amount defaults both sides",
			draft: func() Draft {
				d := validDraft(model.OperationTransfer)
				d.ReceivedAmount = ""
				return d
			}(),
			wantIncome:  "100",
			wantOutcome: "100",
		},
		{
			name: "transfer with explicit received amount keeps both",
			draft: func() Draft {
				d := validDraft(model.OperationTransfer)
				d.ReceivedAmount = "95"
				return d
			}(),
			wantIncome:  "95",
			wantOutcome: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := BuildPayload(tt.draft)
			require.NoError(t, err)

			if tt.wantIncome == "" {
				assert.Nil(t, payload.Income)
			} else {
				require.NotNil(t, payload.Income)
				assert.Equal(t, tt.wantIncome, *payload.Income)
			}
			if tt.wantOutcome == "" {
				assert.Nil(t, payload.Outcome)
			} else {
				require.NotNil(t, payload.Outcome)
				assert.Equal(t, tt.wantOutcome, *payload.Outcome)
			}
		})
	}
}

func TestBuildPayload_AccountMapping(t *testing.T) {
	payload, err := BuildPayload(validDraft(model.OperationTransfer))
	require.NoError(t, err)
	require.NotNil(t, payload.AccountOutcome)
	require.NotNil(t, payload.AccountIncome)
	assert.Equal(t, "acc-src", payload.AccountOutcome.ID)
	assert.Equal(t, "acc-dst", payload.AccountIncome.ID)

	payload, err = BuildPayload(validDraft(model.OperationIncome))
	require.NoError(t, err)
	assert.Nil(t, payload.AccountOutcome, "irrelevant side must be absent, not zero")
	require.NotNil(t, payload.AccountIncome)
}

func TestBuildPayload_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Draft)
		typ      model.OperationType
		wantErr  error
		wantRole AccountRole
	}{
		{
			name:    "missing category",
			typ:     model.OperationOutcome,
			mutate:  func(d *Draft) { d.CategoryID = "" },
			wantErr: ErrMissingCategory,
		},
		{
			name:     "outcome without source account",
			typ:      model.OperationOutcome,
			mutate:   func(d *Draft) { d.SourceAccountID = "" },
			wantRole: RoleSource,
		},
		{
			name:     "income without destination account",
			typ:      model.OperationIncome,
			mutate:   func(d *Draft) { d.DestinationAccountID = "" },
			wantRole: RoleDestination,
		},
		{
			name:     "transfer without destination account",
			typ:      model.OperationTransfer,
			mutate:   func(d *Draft) { d.DestinationAccountID = "" },
			wantRole: RoleDestination,
		},
		{
			name:    "blank amount",
			typ:     model.OperationOutcome,
			mutate:  func(d *Draft) { d.Amount = "" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "non-numeric amount",
			typ:     model.OperationOutcome,
			mutate:  func(d *Draft) { d.Amount = "ten" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "zero amount",
			typ:     model.OperationOutcome,
			mutate:  func(d *Draft) { d.Amount = "0" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			typ:     model.OperationIncome,
			mutate:  func(d *Draft) { d.Amount = "-5" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "bad received amount on transfer",
			typ:     model.OperationTransfer,
			mutate:  func(d *Draft) { d.ReceivedAmount = "oops" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			typ:     model.OperationType("REFUND"),
			mutate:  func(_ *Draft) {},
			wantErr: ErrUnknownOperationType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(tt.typ)
			tt.mutate(&draft)

			payload, err := BuildPayload(draft)
			require.Error(t, err)
			assert.Nil(t, payload)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantRole != "" {
				var missing *MissingAccountError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, tt.wantRole, missing.Role)
			}
		})
	}
}

func TestBuildPayload_ValidationOrder(t *testing.T) {
	// Category wins over accounts and amount when everything is missing.
	_, err := BuildPayload(Draft{Type: model.OperationTransfer})
	assert.ErrorIs(t, err, ErrMissingCategory)

	// Accounts win over amount.
	_, err = BuildPayload(Draft{Type: model.OperationTransfer, CategoryID: "cat-1"})
	var missing *MissingAccountError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, RoleSource, missing.Role)
}

func TestBuildPayload_PlaceHandling(t *testing.T) {
	draft := validDraft(model.OperationOutcome)
	draft.PlaceID = "place-1"

	payload, err := BuildPayload(draft)
	require.NoError(t, err)
	require.NotNil(t, payload.Place)
	assert.Equal(t, "place-1", payload.Place.ID)

	// Transfers never carry a place even when one was picked earlier.
	draft = validDraft(model.OperationTransfer)
	draft.PlaceID = "place-1"
	payload, err = BuildPayload(draft)
	require.NoError(t, err)
	assert.Nil(t, payload.Place)
}

func TestBuildPayload_DateNormalization(t *testing.T) {
	payload, err := BuildPayload(validDraft(model.OperationOutcome))
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, payload.OperationDate)
	require.NoError(t, err)

	local := parsed.Local()
	assert.Equal(t, "2024-03-15", local.Format("2006-01-02"))
	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, 0, local.Minute())

	draft := validDraft(model.OperationOutcome)
	draft.Date = "15/03/2024"
	_, err = BuildPayload(draft)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidAmount))
}

func TestBuildPayload_DefaultsToToday(t *testing.T) {
	draft := validDraft(model.OperationOutcome)
	draft.Date = ""

	payload, err := BuildPayload(draft)
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, payload.OperationDate)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), parsed.Local().Format("2006-01-02"))
}
