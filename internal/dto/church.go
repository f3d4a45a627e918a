package dto

import "github.com/ecclesiahq/church_ledger_app/internal/core/domain"

// CreateChurchRequest defines the payload for creating a church (tenant).
type CreateChurchRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddChurchMemberRequest adds a user to a church with a role.
type AddChurchMemberRequest struct {
	UserID string            `json:"userID" binding:"required"`
	Role   domain.ChurchRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// ChurchResponse is the read shape of a church.
type ChurchResponse struct {
	ChurchID    string `json:"churchID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// ToChurchResponse converts a domain.Church.
func ToChurchResponse(c *domain.Church) ChurchResponse {
	return ChurchResponse{
		ChurchID:    c.ChurchID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}
