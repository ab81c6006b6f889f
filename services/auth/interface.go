package auth

import (
	"context"

	"roadguard/models"
)

// AuthResponse is returned by both login flows.
type AuthResponse struct {
	Token string      `json:"token"`
	Data  SessionData `json:"data"`
}

type SessionData struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     models.Role `json:"role"`
}

// Identity is what a validated token resolves to.
type Identity struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name,omitempty"`
	Email    string      `json:"email,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     models.Role `json:"role"`
}

// AuthService issues and checks bearer tokens.
type AuthService interface {
	AuthenticateAccount(ctx context.Context, email, password string) (*AuthResponse, error)
	AuthenticateAdmin(ctx context.Context, username, password string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Identity, error)
	GetProfile(ctx context.Context, accountID string) (*models.AccountProfile, error)
}
