package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product represents a product record in the catalogue.
type Product struct {
	ID    int64           `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Price decimal.Decimal `json:"price" db:"price"`
	Stock int             `json:"stock" db:"stock"`
}

// MarshalJSON renders the price as a bare number with two fractional digits.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{
		alias: alias(p),
		Price: json.Number(p.Price.StringFixed(2)),
	})
}

// ProductInput holds the normalised mutable fields of a product.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

// MessageResponse is the body returned for confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}
