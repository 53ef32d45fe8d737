package services

import "errors"

// ErrDeviceNotFound is returned when no device matches the given IMEI.
var ErrDeviceNotFound = errors.New("device not found")

// ErrSaleNotFound is returned when no sale matches the given id.
var ErrSaleNotFound = errors.New("sale not found")

// ErrUserNotFound is returned when the referenced seller does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateIMEI is returned when registering a device whose IMEI is taken.
var ErrDuplicateIMEI = errors.New("device with this IMEI already exists")

// ErrDeviceNotAvailable is returned when selling a device that is already sold.
var ErrDeviceNotAvailable = errors.New("device is not available for sale")

// ErrDeviceHasSale blocks deletion of a device that has been sold.
var ErrDeviceHasSale = errors.New("cannot delete device with associated sale")

// ErrSellerInactive is returned when the seller account is deactivated.
var ErrSellerInactive = errors.New("seller account is deactivated")

// ErrValidation covers price/payment constraint violations. Callers wrap it
// with the concrete reason, so match with errors.Is.
var ErrValidation = errors.New("validation failed")
