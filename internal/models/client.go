// internal/models/client.go
package models

import (
	"time"
)

type Client struct {
	BaseModel
	CNI       string `json:"cni" gorm:"uniqueIndex;size:50;not null"`
	Nom       string `json:"nom" gorm:"size:100;not null"`
	Prenom    string `json:"prenom" gorm:"size:100;not null"`
	Email     string `json:"email" gorm:"size:255;index"`
	Telephone string `json:"telephone" gorm:"size:30"`
	Image     string `json:"image" gorm:"size:512"`

	// Relationships
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:ClientID"`
}

// Payment is a ledger entry for an offline settlement (cash, check,
// transfer, card), with an optional stored receipt document.
type Payment struct {
	BaseModel
	TypePaiement PaymentType  `json:"typePaiement" gorm:"type:varchar(20);not null;index"`
	Montant      float64      `json:"montant" gorm:"type:decimal(10,2);not null"`
	DatePaiement time.Time    `json:"datePaiement" gorm:"not null"`
	Status       LedgerStatus `json:"status" gorm:"type:varchar(20);default:'CREATED';index"`
	ClientID     uint         `json:"clientId" gorm:"not null;index"`
	FileURL      string       `json:"fileUrl,omitempty" gorm:"size:512"`
	FileKey      string       `json:"-" gorm:"size:255"`

	// Relationships
	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}
