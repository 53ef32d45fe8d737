package services

import (
	"errors"
	"fmt"

	"phoneshop-backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Coordinator binds device-state changes to sale mutations. It exposes the
// only write paths for the device/sale pair; each one runs as a single
// transaction, so no partial state is ever visible.
type Coordinator struct {
	db      *gorm.DB
	Devices *DeviceRegistry
	Ledger  *SaleLedger
	logger  *zap.Logger
}

func NewCoordinator(db *gorm.DB, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.L()
	}
	return &Coordinator{
		db:      db,
		Devices: NewDeviceRegistry(db, logger),
		Ledger:  NewSaleLedger(db, logger),
		logger:  logger,
	}
}

// CreateSaleInput is the validated request for recording a sale.
type CreateSaleInput struct {
	IMEI        string
	SalePrice   float64
	PaymentType string
	AmountPaid  float64
	Notes       string
}

// CreateSale records a sale and marks the device sold in one atomic unit.
// Exactly one of two concurrent calls for the same device can win: the
// guarded status update fails for the loser and rolls its sale back.
func (c *Coordinator) CreateSale(sellerID uuid.UUID, in CreateSaleInput) (*models.Sale, error) {
	var seller models.User
	if err := c.db.First(&seller, "id = ?", sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up seller: %w", err)
	}
	if !seller.IsActive {
		return nil, ErrSellerInactive
	}

	var created *models.Sale
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.Where("imei = ?", in.IMEI).First(&device).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeviceNotFound
			}
			return fmt.Errorf("failed to look up device: %w", err)
		}

		sale, err := c.Ledger.recordSale(&device, sellerID, in.SalePrice, in.PaymentType, in.AmountPaid, in.Notes)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		if err := c.Devices.markSold(tx, device.ID); err != nil {
			return err
		}

		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("sale created",
		zap.String("sale_id", created.ID.String()),
		zap.String("imei", in.IMEI),
		zap.String("payment_type", in.PaymentType),
		zap.Float64("sale_price", in.SalePrice),
	)
	return c.Ledger.FindByID(created.ID)
}

// AddPayment accumulates a payment onto an existing sale.
func (c *Coordinator) AddPayment(saleID uuid.UUID, amount float64) (*models.Sale, error) {
	var updated *models.Sale
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.First(&sale, "id = ?", saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return fmt.Errorf("failed to look up sale: %w", err)
		}

		s, err := c.Ledger.addPayment(tx, &sale, amount)
		if err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteDevice removes an available device. Devices with a sale stay forever.
func (c *Coordinator) DeleteDevice(imei string) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.Where("imei = ?", imei).First(&device).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeviceNotFound
			}
			return fmt.Errorf("failed to look up device: %w", err)
		}
		return c.Devices.remove(tx, &device)
	})
}
