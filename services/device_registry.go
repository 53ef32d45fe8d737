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

// DeviceRegistry owns device identity and availability state. The
// available -> sold transition is reserved for the Coordinator, which calls
// markSold inside the same transaction that records the sale.
type DeviceRegistry struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDeviceRegistry(db *gorm.DB, logger *zap.Logger) *DeviceRegistry {
	if logger == nil {
		logger = zap.L()
	}
	return &DeviceRegistry{db: db, logger: logger}
}

// DeviceUpdate carries the mutable device fields. Status and IMEI are never
// touched through this path.
type DeviceUpdate struct {
	Brand         *string
	Model         *string
	PurchasePrice *float64
	Notes         *string
}

// Register adds a new device to inventory.
func (r *DeviceRegistry) Register(imei, brand, model string, purchasePrice float64, notes string) (*models.Device, error) {
	if purchasePrice < 0 {
		return nil, fmt.Errorf("%w: purchase price cannot be negative", ErrValidation)
	}

	var existing models.Device
	err := r.db.Where("imei = ?", imei).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateIMEI
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check imei: %w", err)
	}

	device := models.Device{
		IMEI:          imei,
		Brand:         brand,
		Model:         model,
		PurchasePrice: purchasePrice,
		Notes:         notes,
	}
	if err := r.db.Create(&device).Error; err != nil {
		// A racing Register can slip past the read above; the unique index
		// on imei catches it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIMEI
		}
		r.logger.Error("failed to register device", zap.String("imei", imei), zap.Error(err))
		return nil, fmt.Errorf("failed to register device: %w", err)
	}

	r.logger.Info("device registered",
		zap.String("imei", device.IMEI),
		zap.String("brand", device.Brand),
		zap.String("model", device.Model),
	)
	return &device, nil
}

// FindByIMEI looks a device up by its natural key.
func (r *DeviceRegistry) FindByIMEI(imei string) (*models.Device, error) {
	var device models.Device
	if err := r.db.Where("imei = ?", imei).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to look up device: %w", err)
	}
	return &device, nil
}

// List returns devices, optionally filtered by status and brand.
func (r *DeviceRegistry) List(status, brand string) ([]models.Device, error) {
	query := r.db.Model(&models.Device{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if brand != "" {
		query = query.Where("brand = ?", brand)
	}

	var devices []models.Device
	if err := query.Order("arrival_date DESC").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

// Update mutates brand/model/purchase price/notes for a device.
func (r *DeviceRegistry) Update(imei string, in DeviceUpdate) (*models.Device, error) {
	device, err := r.FindByIMEI(imei)
	if err != nil {
		return nil, err
	}

	if in.Brand != nil {
		device.Brand = *in.Brand
	}
	if in.Model != nil {
		device.Model = *in.Model
	}
	if in.PurchasePrice != nil {
		if *in.PurchasePrice < 0 {
			return nil, fmt.Errorf("%w: purchase price cannot be negative", ErrValidation)
		}
		device.PurchasePrice = *in.PurchasePrice
	}
	if in.Notes != nil {
		device.Notes = *in.Notes
	}

	// Only the mutable columns are written; a whole-row save could revert a
	// status flip committed by a concurrent sale.
	res := r.db.Model(&models.Device{}).
		Where("id = ?", device.ID).
		Updates(map[string]interface{}{
			"brand":          device.Brand,
			"model":          device.Model,
			"purchase_price": device.PurchasePrice,
			"notes":          device.Notes,
			"modified_at":    time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update device: %w", res.Error)
	}
	return r.FindByIMEI(imei)
}

// markSold flips the device to sold with a guarded update so concurrent sale
// attempts on the same device cannot both succeed. Zero rows affected means
// the device was not (or no longer) available.
func (r *DeviceRegistry) markSold(tx *gorm.DB, deviceID uuid.UUID) error {
	res := tx.Model(&models.Device{}).
		Where("id = ? AND status = ?", deviceID, models.DeviceAvailable).
		Updates(map[string]interface{}{
			"status":      models.DeviceSold,
			"modified_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark device sold: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDeviceNotAvailable
	}
	return nil
}

// remove deletes a device, refusing while a sale references it.
func (r *DeviceRegistry) remove(tx *gorm.DB, device *models.Device) error {
	var saleCount int64
	if err := tx.Model(&models.Sale{}).Where("device_id = ?", device.ID).Count(&saleCount).Error; err != nil {
		return fmt.Errorf("failed to check for associated sale: %w", err)
	}
	if saleCount > 0 {
		return ErrDeviceHasSale
	}

	if err := tx.Delete(device).Error; err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	return nil
}
