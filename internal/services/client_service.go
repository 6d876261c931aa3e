// internal/services/client_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

// ClientService manages the client registry and its offline payment
// ledger (cash, check, transfer, card receipts).
type ClientService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateClientRequest struct {
	CNI       string `json:"cni" validate:"required,min=3,max=50"`
	Nom       string `json:"nom" validate:"required,min=2,max=100"`
	Prenom    string `json:"prenom" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telephone string `json:"telephone" validate:"max=30"`
}

type CreatePaymentRequest struct {
	CNI          string  `form:"cni" validate:"required"`
	TypePaiement string  `form:"typePaiement" validate:"required"`
	Montant      float64 `form:"montant" validate:"required,gt=0"`
	DatePaiement string  `form:"datePaiement" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func NewClientService(db *gorm.DB, storageService *StorageService) *ClientService {
	return &ClientService{
		db:             db,
		storageService: storageService,
	}
}

func (s *ClientService) CreateClient(req *CreateClientRequest) (*models.Client, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.Client
	if err := s.db.Where("cni = ?", req.CNI).First(&existing).Error; err == nil {
		return nil, errors.New("client with this CNI already exists")
	}

	client := &models.Client{
		CNI:       req.CNI,
		Nom:       req.Nom,
		Prenom:    req.Prenom,
		Email:     req.Email,
		Telephone: req.Telephone,
	}

	if err := s.db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func (s *ClientService) GetClient(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &client, nil
}

func (s *ClientService) GetClientByCNI(cni string) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("cni = ?", cni).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &client, nil
}

func (s *ClientService) SearchClients(params utils.PaginationParams) ([]models.Client, int64, error) {
	query := s.db.Model(&models.Client{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(nom) LIKE ? OR LOWER(prenom) LIKE ? OR cni LIKE ?",
			searchTerm, searchTerm, "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	allowedSortFields := []string{"created_at", "nom", "prenom", "cni"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}

	return clients, total, nil
}

func (s *ClientService) DeleteClient(id uint) error {
	result := s.db.Delete(&models.Client{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("client not found")
	}

	return nil
}

// CreatePayment registers a ledger entry for the client identified by
// CNI and stores the uploaded PDF receipt.
func (s *ClientService) CreatePayment(req *CreatePaymentRequest, file multipart.File, header *multipart.FileHeader) (*models.Payment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	paymentType := models.PaymentType(req.TypePaiement)
	if !paymentType.IsValid() {
		return nil, errors.New("invalid payment type")
	}

	datePaiement, err := time.Parse(dateLayout, req.DatePaiement)
	if err != nil {
		return nil, errors.New("invalid payment date format, expected YYYY-MM-DD")
	}

	client, err := s.GetClientByCNI(req.CNI)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TypePaiement: paymentType,
		Montant:      req.Montant,
		DatePaiement: datePaiement,
		Status:       models.LedgerStatusCreated,
		ClientID:     client.ID,
	}

	if file != nil && header != nil && s.storageService != nil {
		result, err := s.storageService.UploadFile(file, header, s.storageService.GetDefaultUploadOptions("receipts"))
		if err != nil {
			return nil, fmt.Errorf("failed to store receipt: %w", err)
		}
		payment.FileURL = result.URL
		payment.FileKey = result.Key
	}

	if err := s.db.Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.db.Preload("Client").First(payment, payment.ID)

	return payment, nil
}

func (s *ClientService) GetPayment(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Client").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &payment, nil
}

func (s *ClientService) ListPayments(typePaiement, status string, params utils.PaginationParams) ([]models.Payment, int64, error) {
	query := s.db.Model(&models.Payment{}).Preload("Client")

	if typePaiement != "" {
		query = query.Where("type_paiement = ?", typePaiement)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	allowedSortFields := []string{"created_at", "date_paiement", "montant", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch payments: %w", err)
	}

	return payments, total, nil
}

func (s *ClientService) GetPaymentsByClientCNI(cni string) ([]models.Payment, error) {
	client, err := s.GetClientByCNI(cni)
	if err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := s.db.Where("client_id = ?", client.ID).
		Order("date_paiement DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	return payments, nil
}

func (s *ClientService) UpdatePaymentStatus(id uint, req *UpdatePaymentStatusRequest) (*models.Payment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := models.LedgerStatus(req.Status)
	if !status.IsValid() {
		return nil, errors.New("invalid payment status")
	}

	payment, err := s.GetPayment(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(payment).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	payment.Status = status

	return payment, nil
}

// GetReceiptURL returns a short-lived presigned link to the stored
// receipt document.
func (s *ClientService) GetReceiptURL(paymentID uint) (string, error) {
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return "", err
	}

	if payment.FileKey == "" {
		return "", errors.New("payment has no stored receipt")
	}

	if s.storageService == nil {
		return "", errors.New("storage service not configured")
	}

	url, err := s.storageService.GeneratePresignedURL(payment.FileKey, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to generate receipt link: %w", err)
	}

	return url, nil
}
