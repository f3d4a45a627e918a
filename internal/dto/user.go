package dto

import "github.com/ecclesiahq/church_ledger_app/internal/core/domain"

// CreateUserRequest registers a back-office user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates a user by email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userID"`
}

// UserResponse is the read shape of a user.
type UserResponse struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ToUserResponse converts a domain.User.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Name: u.Name, Email: u.Email}
}
