package model

// Category is the full category detail as returned by the backend.
type Category struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Author           IDRef  `json:"author"`
	ForIncome        bool   `json:"forIncome"`
	ForOutcome       bool   `json:"forOutcome"`
	MandatoryOutcome bool   `json:"mandatoryOutcome"`
	Icon             *Icon  `json:"icon"`
	Color            *Color `json:"color"`
}

// CategoryInput is the payload for creating or updating a category.
type CategoryInput struct {
	Name             string `json:"name"`
	ForIncome        bool   `json:"forIncome"`
	ForOutcome       bool   `json:"forOutcome"`
	MandatoryOutcome bool   `json:"mandatoryOutcome"`
	Icon             *IDRef `json:"icon"`
	Color            *IDRef `json:"color"`
}

// ListCategory is one row of the category listing.
type ListCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Icon       *Icon  `json:"icon"`
	Color      *Color `json:"color"`
	ForIncome  bool   `json:"forIncome"`
	ForOutcome bool   `json:"forOutcome"`
}

// UsableFor reports whether the category may be attached to an operation
// of the given type. Income and expense operations are restricted to
// matching categories; transfers and own deposits accept any category.
func (c ListCategory) UsableFor(t OperationType) bool {
	switch t {
	case OperationIncome:
		return c.ForIncome
	case OperationOutcome:
		return c.ForOutcome
	}
	return true
}

// SimpleCategory is the minimal category reference embedded in other
// responses.
type SimpleCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color *Color `json:"color"`
}
