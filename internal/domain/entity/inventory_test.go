package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventory_IsLowStock(t *testing.T) {
	assert.True(t, (&Inventory{CurrentStock: 5, MinStockLevel: 10}).IsLowStock())
	assert.False(t, (&Inventory{CurrentStock: 10, MinStockLevel: 10}).IsLowStock())
	assert.False(t, (&Inventory{CurrentStock: 25, MinStockLevel: 10}).IsLowStock())
}

func TestStockMovement_Delta(t *testing.T) {
	in := StockMovement{Type: MovementTypeIN, Quantity: 5, PreviousStock: 10, NewStock: 15}
	out := StockMovement{Type: MovementTypeOUT, Quantity: 3, PreviousStock: 15, NewStock: 12}

	assert.Equal(t, int64(5), in.Delta())
	assert.Equal(t, int64(-3), out.Delta())
}
