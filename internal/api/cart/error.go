package cart

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty    = errors.New("cart is empty")
	ErrItemNotFound = errors.New("item not in cart")
)

// InsufficientStockError refuses an addition in full, it never adds a
// partial quantity. The shortfall is reported back so the assistant can
// read it to the user.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
