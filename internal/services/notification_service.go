// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

// NotificationService renders and dispatches transactional emails.
type NotificationService struct {
	config *config.Config
	mailer Mailer
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config, mailer Mailer) *NotificationService {
	return &NotificationService{
		config: config,
		mailer: mailer,
	}
}

// SendContactNotification forwards a contact-form submission to the
// agency inbox, with the submitter as Reply-To and any uploaded files
// attached.
func (s *NotificationService) SendContactNotification(msg *models.ContactMessage, attachments []EmailAttachment) error {
	tmpl := s.getEmailTemplate("contact_notification")

	data := map[string]interface{}{
		"FirstName":       msg.FirstName,
		"LastName":        msg.LastName,
		"Email":           msg.Email,
		"Phone":           msg.Phone,
		"RequestType":     msg.RequestType,
		"Subject":         msg.Subject,
		"Message":         msg.Message,
		"AttachmentCount": msg.AttachmentCount,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("[Contact] %s - %s %s", msg.Subject, msg.FirstName, msg.LastName)

	return s.mailer.Send(&EmailMessage{
		To:          []string{s.config.Email.AgencyEmail},
		ReplyTo:     msg.Email,
		Subject:     subject,
		HTMLBody:    body,
		Attachments: attachments,
	})
}

// SendContactConfirmation acknowledges the submission to the client.
func (s *NotificationService) SendContactConfirmation(msg *models.ContactMessage) error {
	tmpl := s.getEmailTemplate("contact_confirmation")

	data := map[string]interface{}{
		"FirstName": msg.FirstName,
		"Subject":   msg.Subject,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.mailer.Send(&EmailMessage{
		To:       []string{msg.Email},
		Subject:  "Nous avons bien reçu votre message",
		HTMLBody: body,
	})
}

// SendReservationConfirmation mails the renter once a booking has been
// paid and confirmed.
func (s *NotificationService) SendReservationConfirmation(reservation *models.Reservation) error {
	tmpl := s.getEmailTemplate("reservation_confirmation")

	productName := ""
	if reservation.Product != nil {
		productName = reservation.Product.Brand + " " + reservation.Product.Name
	}

	data := map[string]interface{}{
		"Prenom":      reservation.Prenom,
		"Produit":     productName,
		"DateDepart":  reservation.DateDepart.Format("02/01/2006"),
		"DateRetour":  reservation.DateRetour.Format("02/01/2006"),
		"NombreJours": reservation.NombreJours,
		"PrixTotal":   fmt.Sprintf("%.2f", reservation.PrixTotal),
		"LieuPrise":   reservation.LieuPrise,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.mailer.Send(&EmailMessage{
		To:       []string{reservation.Email},
		Subject:  "Confirmation de votre réservation",
		HTMLBody: body,
	})
}

// Helper methods
func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	// In a real implementation, these would be loaded from files or database
	templates := map[string]EmailTemplate{
		"contact_notification": {
			Subject: "Nouvelle demande de contact",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Nouvelle demande de contact</h2>
	<p><strong>Nom :</strong> {{.FirstName}} {{.LastName}}</p>
	<p><strong>Email :</strong> {{.Email}}</p>
	<p><strong>Téléphone :</strong> {{.Phone}}</p>
	<p><strong>Type de demande :</strong> {{.RequestType}}</p>
	<p><strong>Sujet :</strong> {{.Subject}}</p>
	<hr>
	<p>{{.Message}}</p>
	{{if .AttachmentCount}}<p><em>{{.AttachmentCount}} pièce(s) jointe(s)</em></p>{{end}}
</body>
</html>`,
		},
		"contact_confirmation": {
			Subject: "Nous avons bien reçu votre message",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Bonjour {{.FirstName}},</h2>
	<p>Nous avons bien reçu votre message concernant « {{.Subject}} ».</p>
	<p>Notre équipe vous répondra dans les plus brefs délais.</p>
	<p>Cordialement,<br>Boutique Location</p>
</body>
</html>`,
		},
		"reservation_confirmation": {
			Subject: "Confirmation de votre réservation",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Bonjour {{.Prenom}},</h2>
	<p>Votre réservation pour <strong>{{.Produit}}</strong> est confirmée.</p>
	<ul>
		<li>Départ : {{.DateDepart}}</li>
		<li>Retour : {{.DateRetour}}</li>
		<li>Durée : {{.NombreJours}} jour(s)</li>
		<li>Prix total : {{.PrixTotal}} €</li>
		<li>Lieu de prise en charge : {{.LieuPrise}}</li>
	</ul>
	<p>Cordialement,<br>Boutique Location</p>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	// Default template
	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
