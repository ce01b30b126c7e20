package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Duration    int             // in minutes
	Group       string          `gorm:"default:'General'"`
	TaxGroupID  *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive    bool            `gorm:"default:true"`

	gorm.Model
}
