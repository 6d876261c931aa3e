// internal/services/payment_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	service     *PaymentService
	mailer      *stubMailer
	reservation *models.Reservation
}

func (suite *PaymentServiceTestSuite) setup(captureStatus string) {
	db := setupTestDB(suite.T())
	product := createTestProduct(suite.T(), db, "Clio V", 50, 2)

	server := newStubPayPalServer(suite.T(), captureStatus)
	suite.T().Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Payment.PayPalClientID = "client-id"
	cfg.Payment.PayPalClientSecret = "client-secret"
	cfg.Payment.PayPalBaseURL = server.URL
	cfg.Payment.Currency = "EUR"
	cfg.Frontend.BaseURL = "http://localhost:4200"

	paypal := NewPayPalService(cfg)
	suite.mailer = &stubMailer{}
	suite.service = NewPaymentService(db, cfg, paypal, NewNotificationService(cfg, suite.mailer))

	depart := time.Now().UTC().AddDate(0, 0, 10)
	suite.reservation = &models.Reservation{
		ProductID:   product.ID,
		DateDepart:  depart,
		DateRetour:  depart.AddDate(0, 0, 4),
		Nom:         "Martin",
		Prenom:      "Sophie",
		Telephone:   "0612345678",
		Email:       "sophie.martin@example.com",
		PrixTotal:   200,
		NombreJours: 4,
		Statut:      models.ReservationStatusPending,
	}
	suite.Require().NoError(db.Create(suite.reservation).Error)
}

func (suite *PaymentServiceTestSuite) TestInitiatePayPalPayment() {
	suite.setup("COMPLETED")

	resp, err := suite.service.InitiatePayPalPayment(&InitiatePaymentRequest{
		ReservationID: suite.reservation.ID,
		Amount:        200,
	})

	suite.Require().NoError(err)
	suite.Equal("ORDER-123", resp.OrderID)
	suite.NotEmpty(resp.ApproveURL)

	var stored models.Reservation
	suite.Require().NoError(suite.service.db.First(&stored, suite.reservation.ID).Error)
	suite.Equal("ORDER-123", stored.TransactionID)
	suite.Equal(models.PaymentMethodPayPal, stored.PaymentMethod)
	suite.Equal(models.PaymentStatePending, stored.PaymentStatus)
	suite.Equal(models.ReservationStatusPending, stored.Statut)
}

func (suite *PaymentServiceTestSuite) TestInitiateRejectsAmountMismatch() {
	suite.setup("COMPLETED")

	_, err := suite.service.InitiatePayPalPayment(&InitiatePaymentRequest{
		ReservationID: suite.reservation.ID,
		Amount:        150,
	})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "amount does not match")
}

func (suite *PaymentServiceTestSuite) TestInitiateRejectsNonPendingReservation() {
	suite.setup("COMPLETED")
	suite.Require().NoError(suite.service.db.Model(suite.reservation).
		Update("statut", models.ReservationStatusConfirmed).Error)

	_, err := suite.service.InitiatePayPalPayment(&InitiatePaymentRequest{
		ReservationID: suite.reservation.ID,
		Amount:        200,
	})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "not awaiting payment")
}

func (suite *PaymentServiceTestSuite) TestCaptureConfirmsReservation() {
	suite.setup("COMPLETED")

	_, err := suite.service.InitiatePayPalPayment(&InitiatePaymentRequest{
		ReservationID: suite.reservation.ID,
		Amount:        200,
	})
	suite.Require().NoError(err)

	reservation, err := suite.service.CapturePayPalPayment("ORDER-123")
	suite.Require().NoError(err)
	suite.Equal(models.ReservationStatusConfirmed, reservation.Statut)
	suite.Equal(models.PaymentStateCompleted, reservation.PaymentStatus)

	suite.Require().Len(suite.mailer.sent, 1)
	suite.Equal([]string{"sophie.martin@example.com"}, suite.mailer.sent[0].To)
}

func (suite *PaymentServiceTestSuite) TestCaptureLeavesReservationPendingOnDecline() {
	suite.setup("DECLINED")

	_, err := suite.service.InitiatePayPalPayment(&InitiatePaymentRequest{
		ReservationID: suite.reservation.ID,
		Amount:        200,
	})
	suite.Require().NoError(err)

	_, err = suite.service.CapturePayPalPayment("ORDER-123")
	suite.Require().Error(err)
	suite.Contains(err.Error(), "DECLINED")

	var stored models.Reservation
	suite.Require().NoError(suite.service.db.First(&stored, suite.reservation.ID).Error)
	suite.Equal(models.ReservationStatusPending, stored.Statut)
}

func (suite *PaymentServiceTestSuite) TestCancelKeepsReservationPending() {
	suite.setup("COMPLETED")

	_, err := suite.service.InitiatePayPalPayment(&InitiatePaymentRequest{
		ReservationID: suite.reservation.ID,
		Amount:        200,
	})
	suite.Require().NoError(err)

	reservation, err := suite.service.CancelPayPalPayment(&CancelPaymentRequest{OrderID: "ORDER-123"})
	suite.Require().NoError(err)
	suite.Equal(models.PaymentStateCancelled, reservation.PaymentStatus)
	suite.Equal(models.ReservationStatusPending, reservation.Statut)
}

func (suite *PaymentServiceTestSuite) TestCaptureUnknownOrder() {
	suite.setup("COMPLETED")

	_, err := suite.service.CapturePayPalPayment("UNKNOWN-ORDER")

	suite.Require().Error(err)
	suite.Contains(err.Error(), "reservation not found")
}

func (suite *PaymentServiceTestSuite) TestRefundReasonMapping() {
	suite.Equal("duplicate", stripeRefundReason("duplicate"))
	suite.Equal("fraudulent", stripeRefundReason("fraudulent"))
	suite.Equal("requested_by_customer", stripeRefundReason("requested_by_customer"))

	// Free-form text falls back to the default Stripe accepts.
	suite.Equal("requested_by_customer", stripeRefundReason(""))
	suite.Equal("requested_by_customer", stripeRefundReason("le client a changé d'avis"))
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
