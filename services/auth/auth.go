package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"roadguard/database"
	accountRepo "roadguard/database/repository/account"
	"roadguard/models"
	"roadguard/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminSubject is the token subject of the configured administrator.
const AdminSubject = "admin"

// DefaultAuthService authenticates accounts from the store and the single
// configured administrator.
type DefaultAuthService struct {
	Repo          accountRepo.AccountRepository
	AdminUsername string
	AdminPassword string
	TokenTTL      time.Duration
}

func (s *DefaultAuthService) ttl() time.Duration {
	if s.TokenTTL <= 0 {
		return 2 * time.Hour
	}
	return s.TokenTTL
}

func (s *DefaultAuthService) AuthenticateAccount(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.NewValidationError("Email and password are required")
	}

	account, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewValidationError("Invalid credentials")
	}
	if err != nil {
		return nil, utils.NewInternalError("Authentication failed, please try again", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewValidationError("Invalid credentials")
	}
	if !account.IsVerified {
		return nil, utils.NewForbiddenError("Email not verified")
	}

	token, err := utils.GenerateToken(account.ID, string(account.Role), account.Email, s.ttl())
	if err != nil {
		return nil, utils.NewInternalError("Failed to issue token", err)
	}

	utils.GetLogger().Info("Account authenticated", zap.String("accountID", account.ID), zap.String("role", string(account.Role)))
	return &AuthResponse{
		Token: token,
		Data:  SessionData{ID: account.ID, Name: account.Name, Role: account.Role},
	}, nil
}

func (s *DefaultAuthService) AuthenticateAdmin(_ context.Context, username, password string) (*AuthResponse, error) {
	if s.AdminUsername == "" || s.AdminPassword == "" {
		return nil, utils.NewInternalError("Admin credentials not configured", errors.New("ADMIN_USERNAME or ADMIN_PASSWORD unset"))
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.AdminPassword)) == 1
	if !userOK || !passOK {
		return nil, utils.NewValidationError("Invalid credentials")
	}

	token, err := utils.GenerateToken(AdminSubject, string(models.RoleAdmin), "", s.ttl())
	if err != nil {
		return nil, utils.NewInternalError("Failed to issue token", err)
	}
	return &AuthResponse{
		Token: token,
		Data:  SessionData{Username: s.AdminUsername, Role: models.RoleAdmin},
	}, nil
}

func (s *DefaultAuthService) ValidateToken(ctx context.Context, token string) (*Identity, error) {
	claims, err := utils.ParseToken(token)
	if errors.Is(err, utils.ErrExpiredToken) {
		return nil, utils.NewUnauthorizedError("Token expired")
	}
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid token")
	}

	if models.Role(claims.Role) == models.RoleAdmin && claims.Subject == AdminSubject {
		return &Identity{Role: models.RoleAdmin, Username: s.AdminUsername}, nil
	}

	account, err := s.Repo.GetByID(ctx, claims.Subject)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewUnauthorizedError("Account no longer exists")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to validate token", err)
	}
	return &Identity{ID: account.ID, Name: account.Name, Email: account.Email, Role: account.Role}, nil
}

func (s *DefaultAuthService) GetProfile(ctx context.Context, accountID string) (*models.AccountProfile, error) {
	account, err := s.Repo.GetByID(ctx, accountID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("Account not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load profile", err)
	}
	return account.Profile(), nil
}
