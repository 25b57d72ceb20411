package entity

import "time"

// TaxRate is the IVA applied to every cart and order subtotal.
const TaxRate = 0.19

type CartItem struct {
	ProductID   string `json:"producto_id"`
	ProductName string `json:"nombre"`
	UnitPrice   int64  `json:"precio_unitario"`
	Quantity    int    `json:"cantidad"`
}

func (i CartItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c Cart) Subtotal() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

func (c Cart) Tax() int64 {
	return int64(float64(c.Subtotal()) * TaxRate)
}

func (c Cart) Total() int64 {
	return c.Subtotal() + c.Tax()
}

func (c Cart) TotalUnits() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
