// controllers/sale.go
package controllers

import (
	"net/http"
	"time"

	"phoneshop-backend/services"
	"phoneshop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateSaleInput defines the expected JSON structure for recording a sale
type CreateSaleInput struct {
	IMEI        string  `json:"imei" binding:"required"`
	SalePrice   float64 `json:"sale_price" binding:"min=0"`
	PaymentType string  `json:"payment_type" binding:"required,oneof=cash credit"`
	AmountPaid  float64 `json:"amount_paid" binding:"min=0"`
	Notes       string  `json:"notes"`
}

// AddPaymentInput defines the expected JSON structure for a payment
type AddPaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
}

type SaleController struct {
	coordinator *services.Coordinator
}

func NewSaleController(coordinator *services.Coordinator) *SaleController {
	return &SaleController{coordinator: coordinator}
}

// GetSales lists sales. Staff only see their own; admins may filter by
// payment type, seller, and date range.
func (sc *SaleController) GetSales(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var filter services.SaleFilter
	if !isAdmin(c) {
		filter.SellerID = userID
	} else {
		filter.PaymentType = c.Query("payment_type")
		if sellerID := c.Query("seller_id"); sellerID != "" {
			id, err := uuid.Parse(sellerID)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid seller ID format")
				return
			}
			filter.SellerID = id
		}
		if dateFrom := c.Query("date_from"); dateFrom != "" {
			t, err := time.Parse(time.RFC3339, dateFrom)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid date_from format")
				return
			}
			filter.DateFrom = &t
		}
		if dateTo := c.Query("date_to"); dateTo != "" {
			t, err := time.Parse(time.RFC3339, dateTo)
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid date_to format")
				return
			}
			filter.DateTo = &t
		}
	}

	sales, err := sc.coordinator.Ledger.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(sales))
	for i := range sales {
		out = append(out, saleJSON(&sales[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetSale retrieves a sale. Staff can only view their own sales.
func (sc *SaleController) GetSale(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	sale, err := sc.coordinator.Ledger.FindByID(saleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !isAdmin(c) && sale.SellerID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	c.JSON(http.StatusOK, saleJSON(sale))
}

// CreateSale records a sale for the authenticated seller and marks the
// device sold, atomically.
func (sc *SaleController) CreateSale(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, err := sc.coordinator.CreateSale(userID, services.CreateSaleInput{
		IMEI:        input.IMEI,
		SalePrice:   input.SalePrice,
		PaymentType: input.PaymentType,
		AmountPaid:  input.AmountPaid,
		Notes:       input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saleJSON(sale))
}

// AddPayment accumulates a payment onto an existing sale. Staff can only add
// payments to their own sales.
func (sc *SaleController) AddPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var input AddPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	sale, err := sc.coordinator.Ledger.FindByID(saleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !isAdmin(c) && sale.SellerID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Access denied")
		return
	}

	updated, err := sc.coordinator.AddPayment(saleID, input.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saleJSON(updated))
}
