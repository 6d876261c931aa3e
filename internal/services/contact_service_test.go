// internal/services/contact_service_test.go
package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

// stubMailer records outbound messages and can be told to fail.
type stubMailer struct {
	sent []*EmailMessage
	fail bool
}

func (m *stubMailer) Send(msg *EmailMessage) error {
	if m.fail {
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newContactTestService(t *testing.T, mailer Mailer) *ContactService {
	t.Helper()

	db := setupTestDB(t)
	cfg := &config.Config{}
	cfg.Email.AgencyEmail = "agence@example.com"
	cfg.Email.FromEmail = "noreply@example.com"
	cfg.Email.FromName = "Boutique Location"

	notification := NewNotificationService(cfg, mailer)
	return NewContactService(db, notification)
}

func validContactRequest() *SubmitContactRequest {
	return &SubmitContactRequest{
		RequestType: "reservation",
		FirstName:   "Sophie",
		LastName:    "Martin",
		Email:       "sophie.martin@example.com",
		Phone:       "0612345678",
		Subject:     "Question sur une location",
		Message:     "Bonjour, le véhicule est-il disponible ce week-end ?",
	}
}

func TestSubmitContactSendsBothEmails(t *testing.T) {
	mailer := &stubMailer{}
	service := newContactTestService(t, mailer)

	message, err := service.SubmitContact(validContactRequest(), nil)

	require.NoError(t, err)
	assert.True(t, message.EmailSent)
	assert.NotNil(t, message.SentAt)
	assert.Equal(t, models.ContactStatusNew, message.Status)

	require.Len(t, mailer.sent, 2)
	// Agency notification first, with the submitter as Reply-To.
	assert.Equal(t, []string{"agence@example.com"}, mailer.sent[0].To)
	assert.Equal(t, "sophie.martin@example.com", mailer.sent[0].ReplyTo)
	// Then the client confirmation.
	assert.Equal(t, []string{"sophie.martin@example.com"}, mailer.sent[1].To)
}

// attachmentHeaders builds a real multipart file header of the given
// size, the way gin hands them to the handler.
func attachmentHeaders(t *testing.T, name string, size int) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("files", name)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["files"]
}

func TestSubmitContactRecordsAttachment(t *testing.T) {
	mailer := &stubMailer{}
	service := newContactTestService(t, mailer)

	files := attachmentHeaders(t, "permis.pdf", 1024)
	message, err := service.SubmitContact(validContactRequest(), files)

	require.NoError(t, err)
	assert.True(t, message.HasAttachments)
	assert.Equal(t, 1, message.AttachmentCount)
	assert.True(t, message.EmailSent)
	assert.NotNil(t, message.SentAt)

	// The agency notification carries the file, the client
	// confirmation does not.
	require.Len(t, mailer.sent, 2)
	require.Len(t, mailer.sent[0].Attachments, 1)
	assert.Equal(t, "permis.pdf", mailer.sent[0].Attachments[0].Filename)
	assert.Len(t, mailer.sent[0].Attachments[0].Data, 1024)
	assert.Empty(t, mailer.sent[1].Attachments)
}

func TestSubmitContactRejectsOversizedAttachment(t *testing.T) {
	mailer := &stubMailer{}
	service := newContactTestService(t, mailer)

	files := attachmentHeaders(t, "video.mp4", maxAttachmentSize+1)
	_, err := service.SubmitContact(validContactRequest(), files)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds the 10MB limit")
	assert.Empty(t, mailer.sent)
}

func TestSubmitContactKeepsMessageWhenMailFails(t *testing.T) {
	mailer := &stubMailer{fail: true}
	service := newContactTestService(t, mailer)

	message, err := service.SubmitContact(validContactRequest(), nil)

	require.NoError(t, err)
	require.NotNil(t, message)
	assert.False(t, message.EmailSent)
	assert.Nil(t, message.SentAt)

	// The record survived the mail failure.
	stored, err := service.GetMessage(message.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailSent)
}

func TestSubmitContactRejectsInvalidInput(t *testing.T) {
	service := newContactTestService(t, &stubMailer{})

	req := validContactRequest()
	req.Email = "not-an-email"

	_, err := service.SubmitContact(req, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestUpdateContactStatusWorkflow(t *testing.T) {
	service := newContactTestService(t, &stubMailer{})

	message, err := service.SubmitContact(validContactRequest(), nil)
	require.NoError(t, err)
	assert.Nil(t, message.ProcessedAt)

	updated, err := service.UpdateStatus(message.ID, &UpdateContactStatusRequest{
		Status:     string(models.ContactStatusInProgress),
		AdminNotes: "Pris en charge",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusInProgress, updated.Status)
	assert.Equal(t, "Pris en charge", updated.AdminNotes)
	assert.NotNil(t, updated.ProcessedAt)

	_, err = service.UpdateStatus(message.ID, &UpdateContactStatusRequest{Status: "BOGUS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid contact status")
}

func TestUpdateContactStatusNotFound(t *testing.T) {
	service := newContactTestService(t, &stubMailer{})

	_, err := service.UpdateStatus(123, &UpdateContactStatusRequest{
		Status: string(models.ContactStatusResolved),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact message not found")
}

func TestSearchMessagesFiltersByStatus(t *testing.T) {
	service := newContactTestService(t, &stubMailer{})

	first, err := service.SubmitContact(validContactRequest(), nil)
	require.NoError(t, err)

	second := validContactRequest()
	second.Subject = "Autre demande"
	_, err = service.SubmitContact(second, nil)
	require.NoError(t, err)

	_, err = service.UpdateStatus(first.ID, &UpdateContactStatusRequest{
		Status: string(models.ContactStatusResolved),
	})
	require.NoError(t, err)

	params := ContactSearchParams{Status: string(models.ContactStatusResolved)}
	params.Page = 1
	params.Limit = 10

	messages, total, err := service.SearchMessages(params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	assert.Equal(t, first.ID, messages[0].ID)
}
