// services/reminder_service.go
package services

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"salonbill-backend/models"
	"salonbill-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule daily reminders: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var salons []models.User
	if err := s.db.Find(&salons, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch salons: %v", err)
		return
	}

	for _, salon := range salons {
		s.ProcessSalonReminders(salon)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) ProcessSalonReminders(salon models.User) {
	if salon.PaymentReminders {
		s.sendPaymentDueReminders(salon.ID)
	}
	if salon.MembershipReminders {
		s.sendMembershipExpiryReminders(salon.ID)
	}
}

// creditInvoice joins a held-balance invoice with its customer.
type creditInvoice struct {
	models.Invoice
	CustomerName  string
	CustomerPhone string
}

// sendPaymentDueReminders nudges customers whose finalized invoices still
// carry a credit balance older than three days.
func (s *ReminderService) sendPaymentDueReminders(salonID uuid.UUID) {
	cutoff := time.Now().AddDate(0, 0, -3)

	var rows []creditInvoice
	err := s.db.Raw(`
		SELECT i.*, c.name AS customer_name, c.phone AS customer_phone
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.salon_id = ? AND i.status = 'active'
		  AND i.credit_amount > 0 AND i.invoice_date < ?`,
		salonID, cutoff).Scan(&rows).Error
	if err != nil {
		log.Printf("Salon %s: Failed to get credit invoices: %v", salonID, err)
		return
	}

	var template models.ReminderTemplate
	if err := s.db.Where("salon_id = ? AND type = ? AND is_active = true", salonID, "payment_due").
		First(&template).Error; err != nil {
		log.Printf("Salon %s: No active template for payment_due: %v", salonID, err)
		return
	}

	for _, row := range rows {
		// One reminder per invoice per week.
		var recent int64
		s.db.Model(&models.ReminderLog{}).
			Where("salon_id = ? AND customer_id = ? AND type = ? AND sent_at > ?",
				salonID, row.CustomerID, "payment_due", time.Now().AddDate(0, 0, -7)).
			Count(&recent)
		if recent > 0 {
			continue
		}

		message := strings.ReplaceAll(template.Message, "[CustomerName]", row.CustomerName)
		message = strings.ReplaceAll(message, "[Amount]", row.CreditAmount.StringFixed(2))
		message = strings.ReplaceAll(message, "[InvoiceNumber]", row.InvoiceNumber)

		s.deliver(salonID, row.CustomerID, template, "payment_due", row.CustomerPhone, message)
	}
}

// sendMembershipExpiryReminders notifies customers whose membership ends
// within the next seven days.
func (s *ReminderService) sendMembershipExpiryReminders(salonID uuid.UUID) {
	now := time.Now()
	horizon := now.AddDate(0, 0, 7)

	var customers []models.Customer
	err := s.db.Where(`salon_id = ? AND is_active = true AND membership_id IS NOT NULL
		AND membership_expiry IS NOT NULL AND membership_expiry BETWEEN ? AND ?`,
		salonID, now, horizon).Find(&customers).Error
	if err != nil {
		log.Printf("Salon %s: Failed to get expiring memberships: %v", salonID, err)
		return
	}

	var template models.ReminderTemplate
	if err := s.db.Where("salon_id = ? AND type = ? AND is_active = true", salonID, "membership_expiry").
		First(&template).Error; err != nil {
		log.Printf("Salon %s: No active template for membership_expiry: %v", salonID, err)
		return
	}

	for _, customer := range customers {
		var recent int64
		s.db.Model(&models.ReminderLog{}).
			Where("salon_id = ? AND customer_id = ? AND type = ? AND sent_at > ?",
				salonID, customer.ID, "membership_expiry", now.AddDate(0, 0, -7)).
			Count(&recent)
		if recent > 0 {
			continue
		}

		days := utils.DaysBetween(now, *customer.MembershipExpiry)
		message := strings.ReplaceAll(template.Message, "[CustomerName]", customer.Name)
		message = strings.ReplaceAll(message, "[DaysLeft]", strconv.Itoa(days))

		s.deliver(salonID, customer.ID, template, "membership_expiry", customer.Phone, message)
	}
}

func (s *ReminderService) deliver(salonID, customerID uuid.UUID, template models.ReminderTemplate, reminderType, phone, message string) {
	// WhatsApp for E.164 numbers, SMS otherwise.
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", phone)
	}

	reminderLog := models.ReminderLog{
		SalonID:      salonID,
		CustomerID:   customerID,
		TemplateID:   template.ID,
		Type:         reminderType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customerID, err)
	}
}
