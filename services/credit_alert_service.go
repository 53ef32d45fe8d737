// services/credit_alert_service.go
package services

import (
	"fmt"
	"os"

	"phoneshop-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreditAlertService sends admins a daily SMS summary of outstanding credit
// balances so unpaid credit sales do not go stale unnoticed.
type CreditAlertService struct {
	db     *gorm.DB
	client *twilio.RestClient
	logger *zap.Logger
}

func NewCreditAlertService(db *gorm.DB) *CreditAlertService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &CreditAlertService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		logger: zap.L(),
	}
}

func (s *CreditAlertService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyCreditAlerts)

	c.Start()
	s.logger.Info("credit alert scheduler started")
}

type creditSummary struct {
	UnpaidCount int64
	Outstanding float64
}

func (s *CreditAlertService) SendDailyCreditAlerts() {
	s.logger.Info("starting daily credit alert processing")

	summary, err := s.outstandingCredit()
	if err != nil {
		s.logger.Error("failed to aggregate outstanding credit", zap.Error(err))
		return
	}
	if summary.UnpaidCount == 0 {
		s.logger.Info("no outstanding credit sales, skipping alerts")
		return
	}

	var admins []models.User
	if err := s.db.Find(&admins, "role = ? AND is_active = ?", models.RoleAdmin, true).Error; err != nil {
		s.logger.Error("failed to fetch admins", zap.Error(err))
		return
	}

	message := fmt.Sprintf(
		"PhoneShop: %d credit sales with outstanding balance, %.2f total due.",
		summary.UnpaidCount, summary.Outstanding,
	)

	for _, admin := range admins {
		if admin.Phone == "" {
			continue
		}
		s.sendSMS(admin.Phone, message)
	}

	s.logger.Info("daily credit alert processing completed",
		zap.Int64("unpaid_count", summary.UnpaidCount),
		zap.Float64("outstanding", summary.Outstanding),
	)
}

func (s *CreditAlertService) outstandingCredit() (creditSummary, error) {
	var summary creditSummary

	err := s.db.Model(&models.Sale{}).
		Where("payment_type = ? AND amount_paid < sale_price", models.PaymentCredit).
		Select("COUNT(*) as unpaid_count, COALESCE(SUM(sale_price - amount_paid), 0) as outstanding").
		Scan(&summary).Error
	return summary, err
}

func (s *CreditAlertService) sendSMS(to, body string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.logger.Error("failed to send credit alert", zap.String("to", to), zap.Error(err))
		return
	}
	if resp.Sid != nil {
		s.logger.Info("credit alert sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	}
}
