// internal/models/contact.go
package models

import (
	"time"
)

// ContactMessage is a persisted contact-form submission. EmailSent
// flips to true only after both outbound emails were accepted by the
// mailer.
type ContactMessage struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestType string `json:"requestType" gorm:"size:50"`
	FirstName   string `json:"firstName" gorm:"size:100;not null"`
	LastName    string `json:"lastName" gorm:"size:100;not null"`
	Email       string `json:"email" gorm:"size:255;not null;index"`
	Phone       string `json:"phone" gorm:"size:30"`
	Subject     string `json:"subject" gorm:"size:255"`
	Message     string `json:"message" gorm:"type:text;not null"`
	UserAgent   string `json:"userAgent,omitempty" gorm:"size:512"`

	HasAttachments  bool `json:"hasAttachments" gorm:"default:false"`
	AttachmentCount int  `json:"attachmentCount" gorm:"default:0"`

	EmailSent bool       `json:"emailSent" gorm:"default:false"`
	SentAt    *time.Time `json:"sentAt,omitempty"`

	Status      ContactStatus `json:"status" gorm:"type:varchar(20);default:'NOUVEAU';index"`
	AdminNotes  string        `json:"adminNotes,omitempty" gorm:"type:text"`
	ProcessedAt *time.Time    `json:"processedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
