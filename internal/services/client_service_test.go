// internal/services/client_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

func newClientTestService(t *testing.T) *ClientService {
	t.Helper()
	return NewClientService(setupTestDB(t), nil)
}

func createTestClient(t *testing.T, service *ClientService, cni string) *models.Client {
	t.Helper()

	client, err := service.CreateClient(&CreateClientRequest{
		CNI:    cni,
		Nom:    "Martin",
		Prenom: "Sophie",
		Email:  "sophie.martin@example.com",
	})
	require.NoError(t, err)

	return client
}

func TestCreateClientRejectsDuplicateCNI(t *testing.T) {
	service := newClientTestService(t)

	createTestClient(t, service, "AB123456")

	_, err := service.CreateClient(&CreateClientRequest{
		CNI:    "AB123456",
		Nom:    "Durand",
		Prenom: "Paul",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetClientByCNI(t *testing.T) {
	service := newClientTestService(t)

	created := createTestClient(t, service, "AB123456")

	client, err := service.GetClientByCNI("AB123456")
	require.NoError(t, err)
	assert.Equal(t, created.ID, client.ID)

	_, err = service.GetClientByCNI("ZZ000000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not found")
}

func TestCreatePaymentResolvesClientByCNI(t *testing.T) {
	service := newClientTestService(t)

	client := createTestClient(t, service, "AB123456")

	payment, err := service.CreatePayment(&CreatePaymentRequest{
		CNI:          "AB123456",
		TypePaiement: string(models.PaymentTypeCash),
		Montant:      350,
		DatePaiement: "2026-08-15",
	}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, client.ID, payment.ClientID)
	assert.Equal(t, models.LedgerStatusCreated, payment.Status)
	assert.Equal(t, models.PaymentTypeCash, payment.TypePaiement)
	require.NotNil(t, payment.Client)
	assert.Equal(t, "AB123456", payment.Client.CNI)
}

func TestCreatePaymentUnknownClient(t *testing.T) {
	service := newClientTestService(t)

	_, err := service.CreatePayment(&CreatePaymentRequest{
		CNI:          "ZZ000000",
		TypePaiement: string(models.PaymentTypeCheck),
		Montant:      100,
		DatePaiement: "2026-08-15",
	}, nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not found")
}

func TestCreatePaymentRejectsUnknownType(t *testing.T) {
	service := newClientTestService(t)

	createTestClient(t, service, "AB123456")

	_, err := service.CreatePayment(&CreatePaymentRequest{
		CNI:          "AB123456",
		TypePaiement: "BITCOIN",
		Montant:      100,
		DatePaiement: "2026-08-15",
	}, nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment type")
}

func TestListPaymentsFilters(t *testing.T) {
	service := newClientTestService(t)

	createTestClient(t, service, "AB123456")

	for _, paymentType := range []models.PaymentType{models.PaymentTypeCash, models.PaymentTypeCheck, models.PaymentTypeCash} {
		_, err := service.CreatePayment(&CreatePaymentRequest{
			CNI:          "AB123456",
			TypePaiement: string(paymentType),
			Montant:      100,
			DatePaiement: "2026-08-15",
		}, nil, nil)
		require.NoError(t, err)
	}

	params := newTestPagination()

	payments, total, err := service.ListPayments(string(models.PaymentTypeCash), "", params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, payments, 2)

	payments, total, err = service.ListPayments("", string(models.LedgerStatusCreated), params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestUpdatePaymentStatus(t *testing.T) {
	service := newClientTestService(t)

	createTestClient(t, service, "AB123456")

	payment, err := service.CreatePayment(&CreatePaymentRequest{
		CNI:          "AB123456",
		TypePaiement: string(models.PaymentTypeTransfer),
		Montant:      500,
		DatePaiement: "2026-08-15",
	}, nil, nil)
	require.NoError(t, err)

	updated, err := service.UpdatePaymentStatus(payment.ID, &UpdatePaymentStatusRequest{
		Status: string(models.LedgerStatusValidated),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LedgerStatusValidated, updated.Status)

	_, err = service.UpdatePaymentStatus(payment.ID, &UpdatePaymentStatusRequest{Status: "BOGUS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment status")
}

func TestGetReceiptURLWithoutFile(t *testing.T) {
	service := newClientTestService(t)

	createTestClient(t, service, "AB123456")

	payment, err := service.CreatePayment(&CreatePaymentRequest{
		CNI:          "AB123456",
		TypePaiement: string(models.PaymentTypeCash),
		Montant:      100,
		DatePaiement: "2026-08-15",
	}, nil, nil)
	require.NoError(t, err)

	_, err = service.GetReceiptURL(payment.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stored receipt")
}
