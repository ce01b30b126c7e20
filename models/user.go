package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"salonbill-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role string `gorm:"type:varchar(20);not null"` // 'owner' or 'cashier'

	// The owner's user ID doubles as the salon ID across the schema.
	SalonName    string `gorm:"not null"`
	SalonAddress string
	GSTIN        string `gorm:"type:varchar(15)"`
	WorkingHours JSONB  `gorm:"type:jsonb;default:'{}'"`

	PaymentReminders      bool `gorm:"default:true"`
	MembershipReminders   bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`
	SMSNotifications      bool `gorm:"default:false"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Custom JSONB type for working hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
