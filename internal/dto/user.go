package dto

import (
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// CreateUserRequest registers a person together with their ledger account.
type CreateUserRequest struct {
	Name         string `json:"name" binding:"required"`
	Username     string `json:"username" binding:"required,min=3"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required,oneof=CEO MANAGER WORKER DRIVER GARDENER CLIENT SUPPLIER"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	SectionID    string `json:"sectionID"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID    string `json:"userID"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	AccountID string `json:"accountID"`
	SectionID string `json:"sectionID,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// ListUsersParams pages user listings.
type ListUsersParams struct {
	Role   string `form:"role"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// ToUserResponse converts a domain.User to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      string(u.Role),
		AccountID: u.AccountID,
		SectionID: u.SectionID,
		IsActive:  u.IsActive,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
