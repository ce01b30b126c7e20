package controllers

import (
	"testing"

	"salonbill-backend/billing"
	"salonbill-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func productItem(id uuid.UUID, qty int) models.InvoiceItem {
	return models.InvoiceItem{ItemID: id, ItemType: "product", Quantity: qty}
}

func productComputedLine(id uuid.UUID, qty int) billing.ComputedLine {
	return billing.ComputedLine{
		LineItem: billing.LineItem{CatalogID: id, Category: billing.CategoryProduct, Quantity: qty},
	}
}

func TestProductStockDeltas(t *testing.T) {
	shampoo := uuid.New()
	serum := uuid.New()
	oil := uuid.New()

	t.Run("quantity change yields the stock adjustment", func(t *testing.T) {
		deltas := productStockDeltas(
			[]models.InvoiceItem{productItem(shampoo, 3)},
			[]billing.ComputedLine{productComputedLine(shampoo, 1)},
		)
		assert.Equal(t, map[uuid.UUID]int{shampoo: 2}, deltas)
	})

	t.Run("removed product restores its full quantity", func(t *testing.T) {
		deltas := productStockDeltas(
			[]models.InvoiceItem{productItem(shampoo, 2), productItem(serum, 1)},
			[]billing.ComputedLine{productComputedLine(shampoo, 2)},
		)
		assert.Equal(t, map[uuid.UUID]int{serum: 1}, deltas)
	})

	t.Run("added product consumes stock", func(t *testing.T) {
		deltas := productStockDeltas(
			nil,
			[]billing.ComputedLine{productComputedLine(oil, 4)},
		)
		assert.Equal(t, map[uuid.UUID]int{oil: -4}, deltas)
	})

	t.Run("unchanged products are omitted", func(t *testing.T) {
		deltas := productStockDeltas(
			[]models.InvoiceItem{productItem(shampoo, 2)},
			[]billing.ComputedLine{productComputedLine(shampoo, 2)},
		)
		assert.Empty(t, deltas)
	})

	t.Run("service units never touch stock", func(t *testing.T) {
		deltas := productStockDeltas(
			[]models.InvoiceItem{{ItemID: uuid.New(), ItemType: "service", Quantity: 2}},
			[]billing.ComputedLine{{
				LineItem: billing.LineItem{CatalogID: uuid.New(), Category: billing.CategoryService, Quantity: 3},
			}},
		)
		assert.Empty(t, deltas)
	})
}
