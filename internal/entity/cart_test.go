package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	c := Cart{
		SessionID: "s1",
		Items: []CartItem{
			{ProductID: "p1", ProductName: "Manzanas", UnitPrice: 2500, Quantity: 4},
			{ProductID: "p2", ProductName: "Leche Entera", UnitPrice: 4200, Quantity: 2},
		},
	}

	assert.Equal(t, int64(18400), c.Subtotal())
	assert.Equal(t, int64(3496), c.Tax())
	assert.Equal(t, int64(21896), c.Total())
	assert.Equal(t, 6, c.TotalUnits())
}

func TestCartTaxTruncates(t *testing.T) {
	c := Cart{Items: []CartItem{{UnitPrice: 33, Quantity: 1}}}

	// 33 * 0.19 = 6.27, fractional pesos are dropped.
	assert.Equal(t, int64(6), c.Tax())
	assert.Equal(t, int64(39), c.Total())
}

func TestEmptyCartTotals(t *testing.T) {
	var c Cart

	assert.Equal(t, int64(0), c.Subtotal())
	assert.Equal(t, int64(0), c.Tax())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, 0, c.TotalUnits())
}
