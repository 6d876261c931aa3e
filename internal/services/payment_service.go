// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

// PaymentService orchestrates reservation payments over the PayPal
// order flow and the Stripe card flow.
type PaymentService struct {
	db            *gorm.DB
	config        *config.Config
	paypalService *PayPalService
	notifier      *NotificationService
}

type InitiatePaymentRequest struct {
	ReservationID uint    `json:"reservationId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

type InitiatePaymentResponse struct {
	OrderID    string `json:"orderId"`
	ApproveURL string `json:"approveUrl"`
	Status     string `json:"status"`
}

type CancelPaymentRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type CardPaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
}

type ConfirmCardPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
	ReservationID   uint   `json:"reservationId" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, paypalService *PayPalService, notifier *NotificationService) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:            db,
		config:        config,
		paypalService: paypalService,
		notifier:      notifier,
	}
}

// InitiatePayPalPayment creates a PayPal order for a pending
// reservation. The amount must match the stored total exactly.
func (s *PaymentService) InitiatePayPalPayment(req *InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var reservation models.Reservation
	if err := s.db.Preload("Product").First(&reservation, req.ReservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if reservation.Statut != models.ReservationStatusPending {
		return nil, errors.New("reservation is not awaiting payment")
	}

	if req.Amount != reservation.PrixTotal {
		return nil, errors.New("amount does not match the reservation total")
	}

	description := fmt.Sprintf("Location %s - %s (%d jours)",
		reservation.Product.Brand, reservation.Product.Name, reservation.NombreJours)

	returnURL := s.config.Frontend.BaseURL + "/payment/success"
	cancelURL := s.config.Frontend.BaseURL + "/payment/cancel"

	order, err := s.paypalService.CreateOrder(req.Amount, s.config.Payment.Currency, description, returnURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	updates := map[string]interface{}{
		"transaction_id": order.ID,
		"payment_method": models.PaymentMethodPayPal,
		"payment_status": models.PaymentStatePending,
	}
	if err := s.db.Model(&reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment reference: %w", err)
	}

	return &InitiatePaymentResponse{
		OrderID:    order.ID,
		ApproveURL: order.ApproveURL,
		Status:     order.Status,
	}, nil
}

// CapturePayPalPayment captures an approved order. The reservation is
// confirmed only when the provider reports COMPLETED.
func (s *PaymentService) CapturePayPalPayment(orderID string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("Product").
		Where("transaction_id = ?", orderID).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	status, err := s.paypalService.CaptureOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	if status != "COMPLETED" {
		return nil, fmt.Errorf("payment capture returned status %s", status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"statut":            models.ReservationStatusConfirmed,
		"payment_status":    models.PaymentStateCompleted,
		"date_modification": &now,
	}
	if err := s.db.Model(&reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to confirm reservation: %w", err)
	}

	reservation.Statut = models.ReservationStatusConfirmed
	reservation.PaymentStatus = models.PaymentStateCompleted
	reservation.DateModification = &now

	s.sendConfirmationEmail(&reservation)

	return &reservation, nil
}

func (s *PaymentService) GetPayPalOrderStatus(orderID string) (string, error) {
	status, err := s.paypalService.GetOrderStatus(orderID)
	if err != nil {
		return "", fmt.Errorf("payment gateway error: %w", err)
	}

	return status, nil
}

// CancelPayPalPayment marks the reservation payment as cancelled. The
// reservation itself stays pending so the client can retry.
func (s *PaymentService) CancelPayPalPayment(req *CancelPaymentRequest) (*models.Reservation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var reservation models.Reservation
	if err := s.db.Where("transaction_id = ?", req.OrderID).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status":    models.PaymentStateCancelled,
		"date_modification": &now,
	}
	if err := s.db.Model(&reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel payment: %w", err)
	}

	reservation.PaymentStatus = models.PaymentStateCancelled
	reservation.DateModification = &now

	return &reservation, nil
}

// CreateCardPaymentIntent opens a Stripe PaymentIntent for a pending
// reservation.
func (s *PaymentService) CreateCardPaymentIntent(reservationID uint) (*CardPaymentIntentResponse, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if reservation.Statut != models.ReservationStatusPending {
		return nil, errors.New("reservation is not awaiting payment")
	}

	// Stripe amounts are in cents
	amountInCents := int64(reservation.PrixTotal * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("reservation_id", fmt.Sprintf("%d", reservation.ID))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	updates := map[string]interface{}{
		"transaction_id": pi.ID,
		"payment_method": models.PaymentMethodCard,
		"payment_status": models.PaymentStatePending,
	}
	if err := s.db.Model(&reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment reference: %w", err)
	}

	return &CardPaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmCardPayment confirms a reservation once its PaymentIntent has
// succeeded.
func (s *PaymentService) ConfirmCardPayment(req *ConfirmCardPaymentRequest) (*models.Reservation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var reservation models.Reservation
	if err := s.db.First(&reservation, req.ReservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{"date_modification": &now}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		updates["statut"] = models.ReservationStatusConfirmed
		updates["payment_status"] = models.PaymentStateCompleted
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		updates["payment_status"] = models.PaymentStatePending
	default:
		updates["payment_status"] = models.PaymentStateFailed
	}

	if err := s.db.Model(&reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation payment: %w", err)
	}

	s.db.Preload("Product").First(&reservation, reservation.ID)

	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		s.sendConfirmationEmail(&reservation)
	}

	return &reservation, nil
}

// sendConfirmationEmail is best-effort; a mail failure never fails the
// payment.
func (s *PaymentService) sendConfirmationEmail(reservation *models.Reservation) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendReservationConfirmation(reservation); err != nil {
		logrus.WithFields(logrus.Fields{
			"reservation_id": reservation.ID,
			"error":          err.Error(),
		}).Warn("Failed to send reservation confirmation email")
	}
}

// RefundCardPayment refunds a confirmed card payment through Stripe.
func (s *PaymentService) RefundCardPayment(reservationID uint, reason string) error {
	var reservation models.Reservation
	if err := s.db.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if reservation.PaymentStatus != models.PaymentStateCompleted {
		return errors.New("can only refund completed payments")
	}

	if reservation.PaymentMethod != models.PaymentMethodCard || reservation.TransactionID == "" {
		return errors.New("reservation has no refundable card payment")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(reservation.TransactionID),
		Reason:        stripe.String(stripeRefundReason(reason)),
	}
	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("payment gateway error: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status":    models.PaymentStateCancelled,
		"date_modification": &now,
	}
	if err := s.db.Model(&reservation).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record refund: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"reason":         reason,
	}).Info("Card payment refunded")

	return nil
}

// stripeRefundReason narrows a free-form reason to the values Stripe
// accepts, defaulting to requested_by_customer.
func stripeRefundReason(reason string) string {
	switch stripe.RefundReason(reason) {
	case stripe.RefundReasonDuplicate,
		stripe.RefundReasonFraudulent,
		stripe.RefundReasonRequestedByCustomer:
		return reason
	}
	return string(stripe.RefundReasonRequestedByCustomer)
}
