package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry served from the products file
// Discount is carried as-is and never used in price calculations
type Product struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"min=0"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
	Discount    string          `json:"discount"`
}

// CartItem is a product the shopper intends to buy, with a quantity
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price × quantity for the item
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
