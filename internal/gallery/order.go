package gallery

import (
	"strings"
	"time"
)

// OrderFields are the buyer details typed into the order form.
type OrderFields struct {
	Name    string
	Email   string
	Address string
}

// Order is assembled at submission time and never stored.
type Order struct {
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	ShippingAddress string    `json:"shippingAddress"`
	ArtworkID       string    `json:"artworkId"`
	ArtworkTitle    string    `json:"artworkTitle"`
	CreatedAt       time.Time `json:"orderDate"`
}

const orderFieldsMessage = "Please fill out all fields."

// ValidateOrder requires every field to be non-empty after trimming.
// Email format is not checked.
func ValidateOrder(f OrderFields) (OrderFields, error) {
	out := OrderFields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Address: strings.TrimSpace(f.Address),
	}
	var missing []string
	if out.Name == "" {
		missing = append(missing, "name")
	}
	if out.Email == "" {
		missing = append(missing, "email")
	}
	if out.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return f, &ValidationError{Fields: missing, Message: orderFieldsMessage}
	}
	return out, nil
}

// NewOrder builds the order record for a validated form and the artwork being bought.
func NewOrder(f OrderFields, a Artwork, at time.Time) Order {
	return Order{
		CustomerName:    f.Name,
		CustomerEmail:   f.Email,
		ShippingAddress: f.Address,
		ArtworkID:       a.ID,
		ArtworkTitle:    a.Title,
		CreatedAt:       at,
	}
}
