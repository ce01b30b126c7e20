package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxGroup is one row of the salon's tax table, referenced by catalog
// entries.
type TaxGroup struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string          `gorm:"not null"` // e.g. "GST 18%"
	CGSTPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.0"`
	SGSTPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.0"`
	IGSTPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.0"`
	IsActive    bool            `gorm:"default:true"`

	gorm.Model
}

func (t *TaxGroup) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = uuid.New()
	return
}
