package model

// SimplePlace is a place where operations happen (a shop, a restaurant).
// The backend only exposes the simple shape.
type SimplePlace struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}
