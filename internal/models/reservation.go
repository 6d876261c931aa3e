// internal/models/reservation.go
package models

import (
	"time"
)

// Reservation holds a rental booking over [DateDepart, DateRetour).
// Dates carry day granularity only; the return day itself is free for
// the next renter.
type Reservation struct {
	ID        uint `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint `json:"produitId" gorm:"not null;index"`

	DateDepart time.Time `json:"dateDepart" gorm:"type:date;not null;index"`
	DateRetour time.Time `json:"dateRetour" gorm:"type:date;not null;index"`

	Nom       string `json:"nom" gorm:"size:100;not null"`
	Prenom    string `json:"prenom" gorm:"size:100;not null"`
	Telephone string `json:"telephone" gorm:"size:30;not null"`
	Email     string `json:"email" gorm:"size:255;not null;index"`

	LieuPrise  string `json:"lieuPrise" gorm:"size:255"`
	LieuRetour string `json:"lieuRetour" gorm:"size:255"`

	PrixTotal   float64           `json:"prixTotal" gorm:"type:decimal(10,2);not null"`
	NombreJours int               `json:"nombreJours" gorm:"not null"`
	Statut      ReservationStatus `json:"statut" gorm:"type:varchar(20);default:'EN_ATTENTE';index"`

	TransactionID string        `json:"transactionId,omitempty" gorm:"size:255;index"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty" gorm:"size:20"`
	PaymentStatus PaymentState  `json:"paymentStatus,omitempty" gorm:"size:20"`

	DateCreation     time.Time  `json:"dateCreation" gorm:"autoCreateTime"`
	DateModification *time.Time `json:"dateModification,omitempty"`

	// Relationships
	Product *Product `json:"produit,omitempty" gorm:"foreignKey:ProductID"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Overlaps reports whether the reservation conflicts with [start, end)
// under half-open interval semantics.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.DateDepart.Before(end) && r.DateRetour.After(start)
}

// IsActive reports whether the reservation still holds capacity.
func (r *Reservation) IsActive() bool {
	switch r.Statut {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusInProgress:
		return true
	}
	return false
}
