package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMode struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"` // Cash, Card, UPI, ...
	IsActive bool   `gorm:"default:true"`

	gorm.Model
}

func (p *PaymentMode) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}
