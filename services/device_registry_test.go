package services

import (
	"testing"
	"time"

	"phoneshop-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func TestRegister_DuplicateIMEI(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	_, err := r.Register("123456789012345", "Apple", "iPhone 13", 700, "")
	require.NoError(t, err)

	_, err = r.Register("123456789012345", "Apple", "iPhone 13", 700, "")
	assert.ErrorIs(t, err, ErrDuplicateIMEI)
}

func TestRegister_NegativePurchasePrice(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	_, err := r.Register("123456789012345", "Apple", "iPhone 13", -1, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_NeverTouchesStatusOrIMEI(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	_, err := r.Register("123456789012345", "Apple", "iPhone 13", 700, "")
	require.NoError(t, err)

	brand := "Samsung"
	model := "Galaxy S22"
	price := 600.00
	notes := "trade-in"
	updated, err := r.Update("123456789012345", DeviceUpdate{
		Brand:         &brand,
		Model:         &model,
		PurchasePrice: &price,
		Notes:         &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "Samsung", updated.Brand)
	assert.Equal(t, "Galaxy S22", updated.Model)
	assert.Equal(t, 600.00, updated.PurchasePrice)
	assert.Equal(t, "trade-in", updated.Notes)
	assert.Equal(t, "123456789012345", updated.IMEI)
	assert.Equal(t, models.DeviceAvailable, updated.Status)
}

func TestRegister_RacingDuplicateIMEI(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	// A competing Register inserts the same IMEI between the duplicate
	// check and the insert; the unique index reports the loser.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("race_insert_once", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "devices" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO devices (id, imei, brand, model, purchase_price, status, arrival_date, modified_at, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			uuid.New(), "123456789012345", "Apple", "iPhone 13", 700.0, models.DeviceAvailable, time.Now(), time.Now(), "",
		)
	})
	require.NoError(t, err)

	_, err = r.Register("123456789012345", "Apple", "iPhone 13", 700, "")
	assert.ErrorIs(t, err, ErrDuplicateIMEI)
}

func TestUpdate_DoesNotRevertConcurrentStatusFlip(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	_, err := r.Register("123456789012345", "Apple", "iPhone 13", 700, "")
	require.NoError(t, err)

	// Another writer marks the device sold after Update has read the row
	// but before it writes back.
	flipped := false
	err = db.Callback().Update().Before("gorm:update").Register("flip_status_once", func(tx *gorm.DB) {
		if flipped || tx.Statement.Table != "devices" {
			return
		}
		flipped = true
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE devices SET status = ? WHERE imei = ?", models.DeviceSold, "123456789012345")
	})
	require.NoError(t, err)

	notes := "price adjusted"
	updated, err := r.Update("123456789012345", DeviceUpdate{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, models.DeviceSold, updated.Status)
	assert.Equal(t, "price adjusted", updated.Notes)
}

func TestMarkSold_OnlyFirstCallerWins(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	device, err := r.Register("123456789012345", "Apple", "iPhone 13", 700, "")
	require.NoError(t, err)

	require.NoError(t, r.markSold(db, device.ID))
	assert.ErrorIs(t, r.markSold(db, device.ID), ErrDeviceNotAvailable)
}

func TestUpdate_DeviceNotFound(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	brand := "Apple"
	_, err := r.Update("000000000000000", DeviceUpdate{Brand: &brand})
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestList_Filters(t *testing.T) {
	db := newTestDB(t)
	r := NewDeviceRegistry(db, zaptest.NewLogger(t))

	_, err := r.Register("111111111111111", "Apple", "iPhone 13", 700, "")
	require.NoError(t, err)
	_, err = r.Register("222222222222222", "Samsung", "Galaxy S21", 500, "")
	require.NoError(t, err)

	all, err := r.List("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	apple, err := r.List("", "Apple")
	require.NoError(t, err)
	require.Len(t, apple, 1)
	assert.Equal(t, "111111111111111", apple[0].IMEI)

	sold, err := r.List(models.DeviceSold, "")
	require.NoError(t, err)
	assert.Empty(t, sold)
}
