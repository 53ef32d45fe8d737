package controllers

import (
	"errors"
	"net/http"

	"phoneshop-backend/models"
	"phoneshop-backend/services"
	"phoneshop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == models.RoleAdmin
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDeviceNotFound),
		errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDeviceNotAvailable),
		errors.Is(err, services.ErrDeviceHasSale),
		errors.Is(err, services.ErrDuplicateIMEI):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrSellerInactive):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error occurred")
	}
}

// saleJSON renders a sale with its derived values, recomputed on every call.
func saleJSON(s *models.Sale) gin.H {
	return gin.H{
		"id":            s.ID,
		"device":        s.Device,
		"seller":        s.Seller,
		"sale_price":    s.SalePrice,
		"payment_type":  s.PaymentType,
		"amount_paid":   s.AmountPaid,
		"balance_due":   s.BalanceDue(),
		"profit":        s.Profit(s.Device.PurchasePrice),
		"is_fully_paid": s.IsFullyPaid(),
		"sale_date":     s.SaleDate,
		"modified_at":   s.ModifiedAt,
		"notes":         s.Notes,
	}
}
