// controllers/device.go
package controllers

import (
	"net/http"

	"phoneshop-backend/services"
	"phoneshop-backend/utils"

	"github.com/gin-gonic/gin"
)

// CreateDeviceInput defines the expected JSON structure for adding a device
type CreateDeviceInput struct {
	IMEI          string  `json:"imei" binding:"required"`
	Brand         string  `json:"brand" binding:"required,max=50"`
	Model         string  `json:"model" binding:"required,max=100"`
	PurchasePrice float64 `json:"purchase_price" binding:"min=0"`
	Notes         string  `json:"notes"`
}

// UpdateDeviceInput defines the expected JSON structure for updating a device
type UpdateDeviceInput struct {
	Brand         *string  `json:"brand" binding:"omitempty,max=50"`
	Model         *string  `json:"model" binding:"omitempty,max=100"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,min=0"`
	Notes         *string  `json:"notes"`
}

type DeviceController struct {
	coordinator *services.Coordinator
}

func NewDeviceController(coordinator *services.Coordinator) *DeviceController {
	return &DeviceController{coordinator: coordinator}
}

// GetDevices lists devices with optional status/brand filters
func (dc *DeviceController) GetDevices(c *gin.Context) {
	devices, err := dc.coordinator.Devices.List(c.Query("status"), c.Query("brand"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

// GetDevice retrieves a device by IMEI
func (dc *DeviceController) GetDevice(c *gin.Context) {
	device, err := dc.coordinator.Devices.FindByIMEI(c.Param("imei"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// CreateDevice adds a new device to inventory
func (dc *DeviceController) CreateDevice(c *gin.Context) {
	var input CreateDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	imei, ok := utils.NormalizeIMEI(input.IMEI)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "IMEI must be exactly 15 digits")
		return
	}

	device, err := dc.coordinator.Devices.Register(imei, input.Brand, input.Model, input.PurchasePrice, input.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, device)
}

// UpdateDevice mutates brand/model/purchase price/notes; status and IMEI are
// not reachable through this endpoint.
func (dc *DeviceController) UpdateDevice(c *gin.Context) {
	var input UpdateDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	device, err := dc.coordinator.Devices.Update(c.Param("imei"), services.DeviceUpdate{
		Brand:         input.Brand,
		Model:         input.Model,
		PurchasePrice: input.PurchasePrice,
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// DeleteDevice removes a device; devices with an associated sale are refused
func (dc *DeviceController) DeleteDevice(c *gin.Context) {
	if err := dc.coordinator.DeleteDevice(c.Param("imei")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
