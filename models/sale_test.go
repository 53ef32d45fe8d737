package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleDerivedValues(t *testing.T) {
	sale := Sale{
		SalePrice:   650.00,
		PaymentType: PaymentCredit,
		AmountPaid:  200.00,
	}

	assert.Equal(t, 450.00, sale.BalanceDue())
	assert.Equal(t, 150.00, sale.Profit(500.00))
	assert.False(t, sale.IsFullyPaid())

	sale.AmountPaid = 650.00
	assert.Equal(t, 0.00, sale.BalanceDue())
	assert.True(t, sale.IsFullyPaid())
}

func TestDeviceIsAvailable(t *testing.T) {
	device := Device{Status: DeviceAvailable}
	assert.True(t, device.IsAvailable())

	device.Status = DeviceSold
	assert.False(t, device.IsAvailable())
}
