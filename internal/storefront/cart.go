package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// Cart is an ordered, id-unique list of cart items.
// It is a value: every transition returns a new Cart and leaves the receiver untouched.
type Cart struct {
	items []models.CartItem
}

// Items returns a copy of the items in insertion order
func (c Cart) Items() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct products in the cart
func (c Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart holds no items
func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Item looks up the item for productID
func (c Cart) Item(productID string) (models.CartItem, bool) {
	if i := c.index(productID); i >= 0 {
		return c.items[i], true
	}
	return models.CartItem{}, false
}

// Add bumps the quantity of an existing item by one or appends p with quantity 1
func (c Cart) Add(p models.Product) Cart {
	items := c.Items()
	if i := c.index(p.ID); i >= 0 {
		items[i].Quantity++
		return Cart{items: items}
	}
	return Cart{items: append(items, models.CartItem{Product: p, Quantity: 1})}
}

// AdjustQuantity adds delta to the item's quantity and applies policy to the result.
// Unknown ids leave the cart unchanged.
func (c Cart) AdjustQuantity(productID string, delta int, policy QuantityPolicy) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}

	items := c.Items()
	qty, keep := policy.apply(items[i].Quantity + delta)
	if !keep {
		return Cart{items: append(items[:i], items[i+1:]...)}
	}
	items[i].Quantity = qty
	return Cart{items: items}
}

// Remove drops the item for productID, if any
func (c Cart) Remove(productID string) Cart {
	i := c.index(productID)
	if i < 0 {
		return c
	}
	items := c.Items()
	return Cart{items: append(items[:i], items[i+1:]...)}
}

// Subtotal is the sum of price × quantity over all items, unrounded
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c Cart) index(productID string) int {
	for i, item := range c.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
