// internal/handlers/reservation_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

func setupReservationRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Reservation{}))

	handler := NewReservationHandler(services.NewReservationService(db))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/reservations", handler.CreateReservation)
	api.GET("/reservations/:id", handler.GetReservation)
	api.GET("/reservations/disponibilite/:produitId", handler.CheckAvailability)
	api.PUT("/reservations/:id/statut", handler.UpdateStatus)

	return r, db
}

func seedProduct(t *testing.T, db *gorm.DB, quantity int) *models.Product {
	t.Helper()

	product := &models.Product{Name: "Clio V", Brand: "Renault", Price: 50, Quantity: quantity}
	require.NoError(t, db.Create(product).Error)

	return product
}

func reservationPayload(productID uint, depart, retour string) map[string]interface{} {
	return map[string]interface{}{
		"produitId":  productID,
		"dateDepart": depart,
		"dateRetour": retour,
		"nom":        "Martin",
		"prenom":     "Sophie",
		"telephone":  "0612345678",
		"email":      "sophie.martin@example.com",
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func testDate(daysFromNow int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func TestCreateReservationEndpoint(t *testing.T) {
	r, db := setupReservationRouter(t)
	product := seedProduct(t, db, 1)

	w := postJSON(t, r, "/api/reservations", reservationPayload(product.ID, testDate(10), testDate(14)))

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCreateReservationConflictReturns409(t *testing.T) {
	r, db := setupReservationRouter(t)
	product := seedProduct(t, db, 1)

	w := postJSON(t, r, "/api/reservations", reservationPayload(product.ID, testDate(10), testDate(14)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/reservations", reservationPayload(product.ID, testDate(12), testDate(16)))
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestCreateReservationValidationReturns400(t *testing.T) {
	r, db := setupReservationRouter(t)
	product := seedProduct(t, db, 1)

	payload := reservationPayload(product.ID, testDate(10), testDate(14))
	payload["email"] = "not-an-email"

	w := postJSON(t, r, "/api/reservations", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationUnknownProductReturns404(t *testing.T) {
	r, _ := setupReservationRouter(t)

	w := postJSON(t, r, "/api/reservations", reservationPayload(999, testDate(10), testDate(14)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	r, db := setupReservationRouter(t)
	product := seedProduct(t, db, 2)

	url := fmt.Sprintf("/api/reservations/disponibilite/%d?dateDepart=%s&dateRetour=%s",
		product.ID, testDate(10), testDate(14))
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Disponible           bool `json:"disponible"`
			VehiculesDisponibles int  `json:"vehiculesDisponibles"`
			QuantiteTotal        int  `json:"quantiteTotal"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Disponible)
	assert.Equal(t, 2, resp.Data.VehiculesDisponibles)
}

func TestCheckAvailabilityMissingDatesReturns400(t *testing.T) {
	r, db := setupReservationRouter(t)
	product := seedProduct(t, db, 2)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/reservations/disponibilite/%d", product.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusInvalidTransitionReturns409(t *testing.T) {
	r, db := setupReservationRouter(t)
	product := seedProduct(t, db, 1)

	w := postJSON(t, r, "/api/reservations", reservationPayload(product.ID, testDate(10), testDate(14)))
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Reservation models.Reservation `json:"reservation"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.Reservation.ID

	body, _ := json.Marshal(map[string]string{"statut": "TERMINEE"})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/reservations/%d/statut", id), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusConflict, w2.Code)

	var stored models.Reservation
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, models.ReservationStatusPending, stored.Statut)
}
