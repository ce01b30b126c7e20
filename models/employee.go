package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a staff member assignable to billed units. Assigning one to
// the first slot of a line reprices it: FixedMarkup is added when set,
// otherwise MarkupPercent of the base price.
type Employee struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name       string `gorm:"not null"`
	Phone      string
	SkillLevel string `gorm:"type:varchar(20);default:'regular'"` // regular, senior, expert

	MarkupPercent decimal.Decimal  `gorm:"type:decimal(5,2);default:0.0"`
	FixedMarkup   *decimal.Decimal `gorm:"type:decimal(10,2)"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	e.ID = uuid.New()
	return
}
