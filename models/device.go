package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DeviceAvailable = "available"
	DeviceSold      = "sold"
)

// Device is a single phone in inventory, keyed by its IMEI. Status only ever
// moves available -> sold, as part of recording a sale.
type Device struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	IMEI          string    `gorm:"column:imei;uniqueIndex;size:15;not null" json:"imei"`
	Brand         string    `gorm:"size:50;not null" json:"brand"`
	Model         string    `gorm:"size:100;not null" json:"model"`
	PurchasePrice float64   `gorm:"type:decimal(10,2);not null" json:"purchase_price"`
	Status        string    `gorm:"type:varchar(20);default:'available'" json:"status"`
	ArrivalDate   time.Time `json:"arrival_date"`
	ModifiedAt    time.Time `gorm:"autoUpdateTime" json:"modified_at"`
	Notes         string    `gorm:"type:text" json:"notes"`
}

func (d *Device) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Status == "" {
		d.Status = DeviceAvailable
	}
	if d.ArrivalDate.IsZero() {
		d.ArrivalDate = time.Now()
	}
	return
}

func (d *Device) IsAvailable() bool {
	return d.Status == DeviceAvailable
}
