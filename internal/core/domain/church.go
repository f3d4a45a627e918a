package domain

import "time"

// Church is the tenant boundary: every ledger row, obligation and recurring
// definition belongs to exactly one church, and every query filters on it.
type Church struct {
	ChurchID    string `json:"churchID"` // Primary key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// ChurchRole defines the possible roles a user can have within a church.
type ChurchRole string

const (
	RoleAdmin    ChurchRole = "ADMIN"
	RoleMember   ChurchRole = "MEMBER"
	RoleReadOnly ChurchRole = "READONLY"
	RoleRemoved  ChurchRole = "REMOVED"
)

// UserChurch represents the membership of a User in a Church.
type UserChurch struct {
	UserID   string     `json:"userID"`
	UserName string     `json:"userName"`
	ChurchID string     `json:"churchID"`
	Role     ChurchRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}
