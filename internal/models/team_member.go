// internal/models/team_member.go
package models

import (
	"time"
)

type TeamMember struct {
	BaseModel
	FirstName        string           `json:"firstName" gorm:"size:100;not null"`
	LastName         string           `json:"lastName" gorm:"size:100;not null"`
	Email            string           `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PhoneNumber      string           `json:"phoneNumber" gorm:"size:30"`
	Position         string           `json:"position" gorm:"size:100"`
	Department       Department       `json:"department" gorm:"type:varchar(30);not null;index"`
	EmploymentStatus EmploymentStatus `json:"employmentStatus" gorm:"type:varchar(20);not null"`
	Salary           float64          `json:"salary" gorm:"type:decimal(10,2)"`
	HireDate         *time.Time       `json:"hireDate" gorm:"type:date"`
	Address          string           `json:"address" gorm:"size:255"`
	City             string           `json:"city" gorm:"size:100"`
	PostalCode       string           `json:"postalCode" gorm:"size:20"`
	IsActive         bool             `json:"isActive" gorm:"default:true;index"`
	ImageURL         string           `json:"imageUrl,omitempty" gorm:"size:512"`
	ImageKey         string           `json:"-" gorm:"size:255"`
	Description      string           `json:"description,omitempty" gorm:"type:text"`
}

func (m *TeamMember) FullName() string {
	return m.FirstName + " " + m.LastName
}
