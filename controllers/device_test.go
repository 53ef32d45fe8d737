package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"phoneshop-backend/models"
	"phoneshop-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newDeviceTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Device{}, &models.Sale{}))

	dc := NewDeviceController(services.NewCoordinator(db, zaptest.NewLogger(t)))

	r := gin.New()
	r.POST("/api/devices", dc.CreateDevice)
	r.GET("/api/devices/:imei", dc.GetDevice)
	return r
}

func TestCreateDeviceHandler_NormalizesIMEI(t *testing.T) {
	router := newDeviceTestRouter(t)

	body, err := json.Marshal(gin.H{
		"imei":           "123456-789012345",
		"brand":          "Samsung",
		"model":          "Galaxy S21",
		"purchase_price": 500.00,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "123456789012345", created.IMEI)

	// The canonical form is what lookups use.
	req = httptest.NewRequest(http.MethodGet, "/api/devices/123456789012345", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateDeviceHandler_RejectsMalformedIMEI(t *testing.T) {
	router := newDeviceTestRouter(t)

	body, err := json.Marshal(gin.H{
		"imei":           "12345678901234a",
		"brand":          "Samsung",
		"model":          "Galaxy S21",
		"purchase_price": 500.00,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/devices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
