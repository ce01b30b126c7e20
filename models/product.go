package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQty    int             `gorm:"default:0"`
	TaxGroupID  *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive    bool            `gorm:"default:true"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}
