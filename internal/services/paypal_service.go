// internal/services/paypal_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

// PayPalService talks to the PayPal Orders v2 REST API. The base URL
// is injectable so tests can point it at a stub server.
type PayPalService struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

type PayPalOrder struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ApproveURL string `json:"approveUrl,omitempty"`
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href   string `json:"href"`
		Rel    string `json:"rel"`
		Method string `json:"method"`
	} `json:"links"`
}

func NewPayPalService(cfg *config.Config) *PayPalService {
	return &PayPalService{
		clientID:     cfg.Payment.PayPalClientID,
		clientSecret: cfg.Payment.PayPalClientSecret,
		baseURL:      strings.TrimRight(cfg.Payment.PayPalBaseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (s *PayPalService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(base, "/")
}

func (s *PayPalService) getAccessToken() (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request returned status %d", resp.StatusCode)
	}

	var tokenResp paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode paypal token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("paypal returned an empty access token")
	}

	return tokenResp.AccessToken, nil
}

// CreateOrder creates a CAPTURE-intent order and returns its id plus
// the buyer approval link.
func (s *PayPalService) CreateOrder(amount float64, currency, description, returnURL, cancelURL string) (*PayPalOrder, error) {
	token, err := s.getAccessToken()
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": currency,
					"value":         fmt.Sprintf("%.2f", amount),
				},
				"description": description,
			},
		},
		"application_context": map[string]string{
			"return_url": returnURL,
			"cancel_url": cancelURL,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if requestID, err := utils.GenerateRequestID(); err == nil {
		req.Header.Set("PayPal-Request-Id", requestID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal order creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paypal order creation returned status %d", resp.StatusCode)
	}

	var orderResp paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, fmt.Errorf("failed to decode paypal order response: %w", err)
	}

	order := &PayPalOrder{
		ID:     orderResp.ID,
		Status: orderResp.Status,
	}
	for _, link := range orderResp.Links {
		if link.Rel == "approve" {
			order.ApproveURL = link.Href
			break
		}
	}

	return order, nil
}

// CaptureOrder captures the funds of an approved order and returns the
// resulting order status.
func (s *PayPalService) CaptureOrder(orderID string) (string, error) {
	token, err := s.getAccessToken()
	if err != nil {
		return "", err
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", s.baseURL, orderID)
	req, err := http.NewRequest(http.MethodPost, captureURL, bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", fmt.Errorf("failed to build capture request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal capture failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal capture returned status %d", resp.StatusCode)
	}

	var orderResp paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", fmt.Errorf("failed to decode paypal capture response: %w", err)
	}

	return orderResp.Status, nil
}

// GetOrderStatus fetches the current status of an order.
func (s *PayPalService) GetOrderStatus(orderID string) (string, error) {
	token, err := s.getAccessToken()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v2/checkout/orders/%s", s.baseURL, orderID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal status request returned status %d", resp.StatusCode)
	}

	var orderResp paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", fmt.Errorf("failed to decode paypal status response: %w", err)
	}

	return orderResp.Status, nil
}
