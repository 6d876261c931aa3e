// internal/models/audit_log.go
package models

// AuditLog records a mutating API request. Rows are written
// asynchronously; a lost row never fails the request.
type AuditLog struct {
	BaseModel
	UserID       *uint  `json:"userId" gorm:"index"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resourceType" gorm:"size:50;not null;index"`
	ResourceID   string `json:"resourceId" gorm:"size:50;index"`
	Details      JSONB  `json:"details" gorm:"type:jsonb"`
	IPAddress    string `json:"ipAddress" gorm:"size:45"`
	UserAgent    string `json:"userAgent" gorm:"type:text"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
