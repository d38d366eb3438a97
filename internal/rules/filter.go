package rules

import (
	"fmt"

	"github.com/storksoft/cashtrack/internal/model"
)

// FilterControls carries the raw filter selections from the user. Empty
// fields mean "not applied".
type FilterControls struct {
	From              string
	To                string
	Types             []model.OperationType
	AccountIDs        []string
	CategoryIDs       []string
	ExcludeCategories bool
}

// BuildFilter translates filter controls into a normalized filter request.
//
// A control with both date bounds empty yields a nil date range (filter not
// applied), which is distinct from a range with one unbounded side. An
// empty type selection yields nil (match all), never an empty set. Present
// bounds are normalized like operation dates.
func BuildFilter(c FilterControls) (model.OperationFilter, error) {
	var filter model.OperationFilter

	if c.From != "" || c.To != "" {
		dr := &model.DateRangeFilter{}
		if c.From != "" {
			from, err := normalizeDate(c.From)
			if err != nil {
				return model.OperationFilter{}, err
			}
			dr.From = &from
		}
		if c.To != "" {
			to, err := normalizeDate(c.To)
			if err != nil {
				return model.OperationFilter{}, err
			}
			dr.To = &to
		}
		filter.DateRange = dr
	}

	if len(c.Types) > 0 {
		types := make([]model.OperationType, 0, len(c.Types))
		for _, t := range c.Types {
			if !t.Valid() {
				return model.OperationFilter{}, fmt.Errorf("%w: %q", ErrUnknownOperationType, string(t))
			}
			types = append(types, t)
		}
		filter.OperationTypes = types
	}

	if len(c.AccountIDs) > 0 {
		ids := make([]string, len(c.AccountIDs))
		copy(ids, c.AccountIDs)
		filter.AccountIDs = ids
	}

	if len(c.CategoryIDs) > 0 {
		ids := make([]string, len(c.CategoryIDs))
		copy(ids, c.CategoryIDs)
		filter.CategoryFilter = &model.CategoryFilter{
			CategoryIDs: ids,
			Include:     !c.ExcludeCategories,
		}
	}

	return filter, nil
}
