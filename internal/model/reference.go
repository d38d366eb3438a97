package model

import "fmt"

// IDRef is a bare reference to another entity by id.
type IDRef struct {
	ID string `json:"id"`
}

// Bank is a known financial institution from the reference data.
type Bank struct {
	ID          string  `json:"id"`
	Country     string  `json:"country"`
	DisplayName string  `json:"displayName"`
	Icon        *string `json:"icon"`
}

// SimpleBank is the minimal bank reference.
type SimpleBank struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Currency is a currency from the reference data.
type Currency struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Symbol      string `json:"symbol"`
}

// Color is an RGB color from the reference data.
type Color struct {
	ID    string `json:"id"`
	Red   int    `json:"red"`
	Green int    `json:"green"`
	Blue  int    `json:"blue"`
}

// Hex renders the color as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// Icon is a named icon from the reference data.
type Icon struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}
