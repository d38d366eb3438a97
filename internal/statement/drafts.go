package statement

import (
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/storksoft/cashtrack/internal/rules"
)

// DraftTarget names the account and categories imported entries land in.
type DraftTarget struct {
	AccountID         string
	IncomeCategoryID  string
	OutcomeCategoryID string
}

// ToDrafts converts statement entries into operation drafts against one
// account: credits become income operations, debits become expenses. Each
// draft still goes through the regular validation before submission.
func ToDrafts(entries []Entry, target DraftTarget) []rules.Draft {
	drafts := make([]rules.Draft, 0, len(entries))

	for _, entry := range entries {
		draft := rules.Draft{
			Amount:      entry.Amount.String(),
			Date:        entry.Date.Format("2006-01-02"),
			Description: entry.Description,
		}

		if entry.Credit {
			draft.Type = model.OperationIncome
			draft.CategoryID = target.IncomeCategoryID
			draft.DestinationAccountID = target.AccountID
		} else {
			draft.Type = model.OperationOutcome
			draft.CategoryID = target.OutcomeCategoryID
			draft.SourceAccountID = target.AccountID
		}

		drafts = append(drafts, draft)
	}

	return drafts
}
