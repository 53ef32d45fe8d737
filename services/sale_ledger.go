package services

import (
	"errors"
	"fmt"
	"time"

	"phoneshop-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SaleLedger owns sale records and payment accumulation. It validates and
// constructs sales but never flips device state itself; that pairing is the
// Coordinator's job.
type SaleLedger struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSaleLedger(db *gorm.DB, logger *zap.Logger) *SaleLedger {
	if logger == nil {
		logger = zap.L()
	}
	return &SaleLedger{db: db, logger: logger}
}

// SaleFilter narrows List results. Zero values mean "no filter".
type SaleFilter struct {
	PaymentType string
	SellerID    uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
}

// recordSale validates the payment constraints against the device and returns
// an unsaved sale record. No mutation happens here.
func (l *SaleLedger) recordSale(device *models.Device, sellerID uuid.UUID, salePrice float64, paymentType string, amountPaid float64, notes string) (*models.Sale, error) {
	if !device.IsAvailable() {
		return nil, ErrDeviceNotAvailable
	}
	if paymentType != models.PaymentCash && paymentType != models.PaymentCredit {
		return nil, fmt.Errorf("%w: payment type must be cash or credit", ErrValidation)
	}
	if salePrice < 0 {
		return nil, fmt.Errorf("%w: sale price cannot be negative", ErrValidation)
	}
	if amountPaid < 0 {
		return nil, fmt.Errorf("%w: amount paid cannot be negative", ErrValidation)
	}
	if amountPaid > salePrice {
		return nil, fmt.Errorf("%w: amount paid cannot exceed sale price", ErrValidation)
	}
	if paymentType == models.PaymentCash && amountPaid != salePrice {
		return nil, fmt.Errorf("%w: cash sales must be paid in full", ErrValidation)
	}

	return &models.Sale{
		DeviceID:    device.ID,
		SellerID:    sellerID,
		SalePrice:   salePrice,
		PaymentType: paymentType,
		AmountPaid:  amountPaid,
		Notes:       notes,
	}, nil
}

// addPayment accumulates a payment onto a sale. The balance check runs twice:
// once against the loaded row, and again inside the UPDATE's WHERE clause so a
// concurrent payment cannot push amount_paid past sale_price.
func (l *SaleLedger) addPayment(tx *gorm.DB, sale *models.Sale, amount float64) (*models.Sale, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if amount > sale.BalanceDue() {
		return nil, fmt.Errorf("%w: payment amount exceeds balance due", ErrValidation)
	}

	res := tx.Model(&models.Sale{}).
		Where("id = ? AND amount_paid + ? <= sale_price", sale.ID, amount).
		Updates(map[string]interface{}{
			"amount_paid": gorm.Expr("amount_paid + ?", amount),
			"modified_at": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to add payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: payment amount exceeds balance due", ErrValidation)
	}

	var updated models.Sale
	if err := tx.Preload("Device").Preload("Seller").First(&updated, "id = ?", sale.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload sale: %w", err)
	}

	l.logger.Info("payment added",
		zap.String("sale_id", updated.ID.String()),
		zap.Float64("amount", amount),
		zap.Float64("balance_due", updated.BalanceDue()),
	)
	return &updated, nil
}

// FindByID loads a sale with its device and seller.
func (l *SaleLedger) FindByID(id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := l.db.Preload("Device").Preload("Seller").First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to look up sale: %w", err)
	}
	return &sale, nil
}

// List returns sales matching the filter, newest first.
func (l *SaleLedger) List(filter SaleFilter) ([]models.Sale, error) {
	query := l.db.Model(&models.Sale{}).Preload("Device").Preload("Seller")
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.SellerID != uuid.Nil {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.DateFrom != nil {
		query = query.Where("sale_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("sale_date <= ?", *filter.DateTo)
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
