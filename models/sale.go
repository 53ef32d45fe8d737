package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
)

// Sale consumes exactly one device (unique FK) and belongs to one seller.
// AmountPaid only ever grows, and never past SalePrice.
type Sale struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DeviceID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"device_id"`
	SellerID uuid.UUID `gorm:"type:uuid;index;not null" json:"seller_id"`

	SalePrice   float64   `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	PaymentType string    `gorm:"type:varchar(20);not null" json:"payment_type"` // cash, credit
	AmountPaid  float64   `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	SaleDate    time.Time `json:"sale_date"`
	ModifiedAt  time.Time `gorm:"autoUpdateTime" json:"modified_at"`
	Notes       string    `gorm:"type:text" json:"notes"`

	Device Device `gorm:"foreignKey:DeviceID" json:"device"`
	Seller User   `gorm:"foreignKey:SellerID" json:"seller"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	return
}

// BalanceDue is the amount still owed on a credit sale.
func (s *Sale) BalanceDue() float64 {
	return s.SalePrice - s.AmountPaid
}

// Profit is computed against the device purchase price, never stored.
func (s *Sale) Profit(purchasePrice float64) float64 {
	return s.SalePrice - purchasePrice
}

func (s *Sale) IsFullyPaid() bool {
	return s.BalanceDue() <= 0
}
