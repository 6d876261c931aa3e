// internal/services/paypal_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
)

func newStubPayPalServer(t *testing.T, captureStatus string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "stub-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer stub-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("PayPal-Request-Id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "CAPTURE", payload["intent"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "ORDER-123",
			"status": "CREATED",
			"links": []map[string]string{
				{"href": "https://sandbox.paypal.com/checkoutnow?token=ORDER-123", "rel": "approve", "method": "GET"},
				{"href": "https://api.sandbox.paypal.com/v2/checkout/orders/ORDER-123", "rel": "self", "method": "GET"},
			},
		})
	})

	mux.HandleFunc("/v2/checkout/orders/ORDER-123/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":     "ORDER-123",
			"status": captureStatus,
		})
	})

	mux.HandleFunc("/v2/checkout/orders/ORDER-123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":     "ORDER-123",
			"status": "APPROVED",
		})
	})

	return httptest.NewServer(mux)
}

func newTestPayPalService(baseURL string) *PayPalService {
	cfg := &config.Config{}
	cfg.Payment.PayPalClientID = "client-id"
	cfg.Payment.PayPalClientSecret = "client-secret"
	cfg.Payment.PayPalBaseURL = baseURL

	return NewPayPalService(cfg)
}

func TestPayPalCreateOrder(t *testing.T) {
	server := newStubPayPalServer(t, "COMPLETED")
	defer server.Close()

	service := newTestPayPalService(server.URL)

	order, err := service.CreateOrder(200.0, "EUR", "Location Renault Clio V (4 jours)",
		"http://localhost:4200/payment/success", "http://localhost:4200/payment/cancel")

	require.NoError(t, err)
	assert.Equal(t, "ORDER-123", order.ID)
	assert.Equal(t, "CREATED", order.Status)
	assert.True(t, strings.Contains(order.ApproveURL, "checkoutnow"))
}

func TestPayPalCaptureOrder(t *testing.T) {
	server := newStubPayPalServer(t, "COMPLETED")
	defer server.Close()

	service := newTestPayPalService(server.URL)

	status, err := service.CaptureOrder("ORDER-123")

	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", status)
}

func TestPayPalGetOrderStatus(t *testing.T) {
	server := newStubPayPalServer(t, "COMPLETED")
	defer server.Close()

	service := newTestPayPalService(server.URL)

	status, err := service.GetOrderStatus("ORDER-123")

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", status)
}

func TestPayPalRejectsBadCredentials(t *testing.T) {
	server := newStubPayPalServer(t, "COMPLETED")
	defer server.Close()

	service := newTestPayPalService(server.URL)
	service.clientSecret = "wrong"

	_, err := service.CreateOrder(10, "EUR", "test", "http://r", "http://c")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
