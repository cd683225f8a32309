package auth

import "github.com/tourneo/tourneo/internal/user"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the signed token plus the user record. The roles list
// mirrors what was encoded into the token at issuance.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	User        user.User `json:"user"`
	Roles       []string  `json:"roles"`
}
