package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Phone       string `gorm:"not null;uniqueIndex:idx_salon_phone,priority:2"`
	Email       string
	Birthday    *time.Time
	Anniversary *time.Time
	Notes       string

	MembershipID     *uuid.UUID `gorm:"type:uuid;index"`
	MembershipExpiry *time.Time

	TotalVisits int             `gorm:"default:0"`
	TotalSpent  decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	LastVisit   *time.Time
	IsActive    bool `gorm:"default:true"`

	Invoices []Invoice `gorm:"foreignKey:CustomerID"`

	gorm.Model
}
