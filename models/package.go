package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Package bundles several services under one price. Billing treats it as a
// single line; the included services only matter for the catalog display.
type Package struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TaxGroupID  *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive    bool            `gorm:"default:true"`

	Items []PackageItem `gorm:"foreignKey:PackageID"`

	gorm.Model
}

type PackageItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PackageID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	Quantity  int       `gorm:"default:1"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}

func (pi *PackageItem) BeforeCreate(tx *gorm.DB) (err error) {
	pi.ID = uuid.New()
	return
}
