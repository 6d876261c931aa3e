// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "EN_ATTENTE"
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMEE"
	ReservationStatusInProgress ReservationStatus = "EN_COURS"
	ReservationStatusCompleted  ReservationStatus = "TERMINEE"
	ReservationStatusCancelled  ReservationStatus = "ANNULEE"
)

// reservationTransitions lists the allowed status moves. Terminal
// statuses have no outgoing entries.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusInProgress, ReservationStatusCancelled},
	ReservationStatusInProgress: {ReservationStatusCompleted, ReservationStatusCancelled},
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusInProgress,
		ReservationStatusCompleted, ReservationStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to target is allowed.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, next := range reservationTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ActiveReservationStatuses are the statuses that hold a unit of
// product capacity.
func ActiveReservationStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusInProgress,
	}
}

type PaymentState string

const (
	PaymentStatePending   PaymentState = "PENDING"
	PaymentStateCompleted PaymentState = "COMPLETED"
	PaymentStateCancelled PaymentState = "CANCELLED"
	PaymentStateFailed    PaymentState = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodPayPal PaymentMethod = "PAYPAL"
	PaymentMethodCard   PaymentMethod = "CARTE"
)

type PaymentType string

const (
	PaymentTypeCash     PaymentType = "ESPECES"
	PaymentTypeCheck    PaymentType = "CHEQUE"
	PaymentTypeTransfer PaymentType = "VIREMENT"
	PaymentTypeCard     PaymentType = "CARTE"
)

func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeCash, PaymentTypeCheck, PaymentTypeTransfer, PaymentTypeCard:
		return true
	}
	return false
}

type LedgerStatus string

const (
	LedgerStatusCreated   LedgerStatus = "CREATED"
	LedgerStatusValidated LedgerStatus = "VALIDATED"
	LedgerStatusRejected  LedgerStatus = "REJECTED"
)

func (s LedgerStatus) IsValid() bool {
	switch s {
	case LedgerStatusCreated, LedgerStatusValidated, LedgerStatusRejected:
		return true
	}
	return false
}

type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "NOUVEAU"
	ContactStatusInProgress ContactStatus = "EN_COURS"
	ContactStatusAnswered   ContactStatus = "REPONDU"
	ContactStatusResolved   ContactStatus = "RESOLU"
	ContactStatusArchived   ContactStatus = "ARCHIVE"
)

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusNew, ContactStatusInProgress, ContactStatusAnswered,
		ContactStatusResolved, ContactStatusArchived:
		return true
	}
	return false
}

type Department string

const (
	DepartmentAdministration Department = "ADMINISTRATION"
	DepartmentSales          Department = "VENTES"
	DepartmentMaintenance    Department = "MAINTENANCE"
	DepartmentAccounting     Department = "COMPTABILITE"
	DepartmentMarketing      Department = "MARKETING"
	DepartmentHR             Department = "RH"
	DepartmentSecurity       Department = "SECURITE"
)

func (d Department) IsValid() bool {
	switch d {
	case DepartmentAdministration, DepartmentSales, DepartmentMaintenance,
		DepartmentAccounting, DepartmentMarketing, DepartmentHR, DepartmentSecurity:
		return true
	}
	return false
}

type EmploymentStatus string

const (
	EmploymentStatusCDI       EmploymentStatus = "CDI"
	EmploymentStatusCDD       EmploymentStatus = "CDD"
	EmploymentStatusIntern    EmploymentStatus = "STAGE"
	EmploymentStatusFreelance EmploymentStatus = "FREELANCE"
	EmploymentStatusPartTime  EmploymentStatus = "TEMPS_PARTIEL"
)

func (s EmploymentStatus) IsValid() bool {
	switch s {
	case EmploymentStatusCDI, EmploymentStatusCDD, EmploymentStatusIntern,
		EmploymentStatusFreelance, EmploymentStatusPartTime:
		return true
	}
	return false
}
