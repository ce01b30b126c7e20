package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice stores the finalized (or held) output of a billing-form
// recomputation. Every money column is a derived value; the editable
// inputs (discount box, toggles, credit) are kept alongside so the editor
// can be reopened from this row.
type Invoice struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	InvoiceDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	Status        string    `gorm:"type:varchar(10);default:'active'"` // active, hold

	// Editable inputs, kept for reopening the editor.
	DiscountInput     string          `gorm:"type:varchar(20)"`
	DiscountType      string          `gorm:"type:varchar(10);default:'percent'"` // percent, fixed
	MembershipID      *uuid.UUID      `gorm:"type:uuid"`
	MembershipPercent decimal.Decimal `gorm:"type:decimal(5,2);default:0.0"`
	MembershipApplied bool            `gorm:"default:false"`
	ExemptAll         bool            `gorm:"default:false"`
	ExemptPackages    bool            `gorm:"default:false"`
	ExemptProducts    bool            `gorm:"default:false"`

	// Derived totals.
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MembershipDiscount decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	AdditionalDiscount decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	TaxableAmount      decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	CGSTAmount         decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	SGSTAmount         decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	IGSTAmount         decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	RoundOff           decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	GrandTotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreditAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	Notes        string

	Items    []InvoiceItem    `gorm:"foreignKey:InvoiceID"`
	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is one persisted unit record: service and package lines are
// stored as quantity-1 rows, one per staff assignment, each carrying its
// proportional share of the line's amounts; product lines keep their
// quantity and a single row.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	ItemID   uuid.UUID `gorm:"type:uuid;index;not null"` // catalog id
	ItemType string    `gorm:"type:varchar(10);not null"` // service, package, product
	Name     string    `gorm:"not null"`
	Quantity int       `gorm:"default:1"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	StaffID   *uuid.UUID `gorm:"type:uuid;index"`
	StaffName string

	TaxableAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	CGSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	SGSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	IGSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);default:0.0"`
}

// InvoicePayment is one payment-mode entry on a finalized invoice.
type InvoicePayment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	PaymentModeID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ModeName      string          `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
