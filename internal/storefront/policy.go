package storefront

import (
	"fmt"
	"strings"
)

// QuantityPolicy decides what happens when an adjustment takes a quantity to zero or below
type QuantityPolicy int

const (
	// Unbounded keeps whatever quantity results, including zero and negatives
	Unbounded QuantityPolicy = iota
	// FloorAtZero clamps the quantity at zero and keeps the item
	FloorAtZero
	// RemoveAtZero drops the item once its quantity is zero or below
	RemoveAtZero
)

var policyNames = map[QuantityPolicy]string{
	Unbounded:    "unbounded",
	FloorAtZero:  "floor",
	RemoveAtZero: "remove",
}

func (p QuantityPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("QuantityPolicy(%d)", int(p))
}

// ParseQuantityPolicy accepts the names used in configuration
func ParseQuantityPolicy(s string) (QuantityPolicy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return Unbounded, fmt.Errorf("unknown quantity policy %q", s)
}

// apply returns the quantity to store and whether the item stays in the cart
func (p QuantityPolicy) apply(qty int) (int, bool) {
	switch p {
	case FloorAtZero:
		if qty < 0 {
			return 0, true
		}
	case RemoveAtZero:
		if qty <= 0 {
			return 0, false
		}
	}
	return qty, true
}
