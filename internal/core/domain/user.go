package domain

import "time"

// User represents a back-office user of the application.
type User struct {
	UserID string `json:"userID"` // Primary key (UUID)
	Name   string `json:"name"`
	Email  string `json:"email"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}
