package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every catalog model carries the gorm timestamp/soft-delete columns.
// Accessing CreatedAt fails to compile if the embed is dropped.
func TestCatalogModelsCarryTimestamps(t *testing.T) {
	assert.True(t, Service{}.CreatedAt.IsZero())
	assert.True(t, Package{}.CreatedAt.IsZero())
	assert.True(t, Product{}.CreatedAt.IsZero())
	assert.True(t, Employee{}.CreatedAt.IsZero())
	assert.True(t, TaxGroup{}.CreatedAt.IsZero())
	assert.True(t, Membership{}.CreatedAt.IsZero())
	assert.True(t, PaymentMode{}.CreatedAt.IsZero())
}
