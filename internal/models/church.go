package models

import "time"

// Church is the tenant row every ledger record hangs off.
type Church struct {
	ChurchID    string `json:"churchID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// ChurchRole is the membership role persisted per user and church.
type ChurchRole string

const (
	RoleAdmin    ChurchRole = "ADMIN"
	RoleMember   ChurchRole = "MEMBER"
	RoleReadOnly ChurchRole = "READONLY"
	RoleRemoved  ChurchRole = "REMOVED"
)

// UserChurch is the membership join row.
type UserChurch struct {
	UserID   string     `json:"userID"`
	ChurchID string     `json:"churchID"`
	Role     ChurchRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}
