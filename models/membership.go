package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Membership is a purchasable plan that discounts service-category lines
// by a flat percent while it is valid.
type Membership struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name            string          `gorm:"not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	DurationDays    int             `gorm:"default:365"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);default:0.0"`
	IsActive        bool            `gorm:"default:true"`

	gorm.Model
}

func (m *Membership) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
