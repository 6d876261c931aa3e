// internal/services/contact_service.go
package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

const maxAttachmentSize = 10 * 1024 * 1024 // 10MB per file

type ContactService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type SubmitContactRequest struct {
	RequestType string `json:"requestType" form:"requestType" validate:"max=50"`
	FirstName   string `json:"firstName" form:"firstName" validate:"required,min=2,max=100"`
	LastName    string `json:"lastName" form:"lastName" validate:"required,min=2,max=100"`
	Email       string `json:"email" form:"email" validate:"required,email"`
	Phone       string `json:"phone" form:"phone" validate:"max=30"`
	Subject     string `json:"subject" form:"subject" validate:"required,min=2,max=255"`
	Message     string `json:"message" form:"message" validate:"required,min=5"`
	UserAgent   string `json:"-" form:"-"`
}

type UpdateContactStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"adminNotes"`
}

type ContactSearchParams struct {
	utils.PaginationParams
	Status string
}

func NewContactService(db *gorm.DB, notificationService *NotificationService) *ContactService {
	return &ContactService{
		db:                  db,
		notificationService: notificationService,
	}
}

// SubmitContact persists the message first, then dispatches the agency
// notification and the client confirmation. A mail failure leaves the
// stored message with EmailSent=false; there is no retry.
func (s *ContactService) SubmitContact(req *SubmitContactRequest, files []*multipart.FileHeader) (*models.ContactMessage, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	attachments, err := readAttachments(files)
	if err != nil {
		return nil, err
	}

	message := &models.ContactMessage{
		RequestType:     req.RequestType,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Subject:         req.Subject,
		Message:         req.Message,
		UserAgent:       req.UserAgent,
		HasAttachments:  len(attachments) > 0,
		AttachmentCount: len(attachments),
		Status:          models.ContactStatusNew,
	}

	if err := s.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	if err := s.notificationService.SendContactNotification(message, attachments); err != nil {
		logrus.WithError(err).WithField("message_id", message.ID).
			Error("Failed to send contact notification email")
		return message, nil
	}

	if err := s.notificationService.SendContactConfirmation(message); err != nil {
		logrus.WithError(err).WithField("message_id", message.ID).
			Error("Failed to send contact confirmation email")
		return message, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_sent": true,
		"sent_at":    &now,
	}
	if err := s.db.Model(message).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark message as sent: %w", err)
	}

	message.EmailSent = true
	message.SentAt = &now

	return message, nil
}

func (s *ContactService) GetMessage(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := s.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contact message not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &message, nil
}

func (s *ContactService) SearchMessages(params ContactSearchParams) ([]models.ContactMessage, int64, error) {
	query := s.db.Model(&models.ContactMessage{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("email LIKE ? OR subject LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	allowedSortFields := []string{"created_at", "status", "email"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var messages []models.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch contact messages: %w", err)
	}

	return messages, total, nil
}

// UpdateStatus moves a message through the triage workflow and stamps
// ProcessedAt on the first status change.
func (s *ContactService) UpdateStatus(id uint, req *UpdateContactStatusRequest) (*models.ContactMessage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := models.ContactStatus(req.Status)
	if !status.IsValid() {
		return nil, errors.New("invalid contact status")
	}

	message, err := s.GetMessage(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if req.AdminNotes != "" {
		updates["admin_notes"] = req.AdminNotes
	}
	if message.ProcessedAt == nil {
		now := time.Now()
		updates["processed_at"] = &now
		message.ProcessedAt = &now
	}

	if err := s.db.Model(message).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update contact message: %w", err)
	}

	message.Status = status
	if req.AdminNotes != "" {
		message.AdminNotes = req.AdminNotes
	}

	return message, nil
}

func (s *ContactService) DeleteMessage(id uint) error {
	result := s.db.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("contact message not found")
	}

	return nil
}

func readAttachments(files []*multipart.FileHeader) ([]EmailAttachment, error) {
	var attachments []EmailAttachment

	for _, header := range files {
		if header.Size > maxAttachmentSize {
			return nil, fmt.Errorf("attachment %s exceeds the 10MB limit", header.Filename)
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment %s: %w", header.Filename, err)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %s: %w", header.Filename, err)
		}

		attachments = append(attachments, EmailAttachment{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return attachments, nil
}
