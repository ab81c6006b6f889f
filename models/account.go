package models

import "time"

// Role discriminates the three kinds of account stored in one collection.
type Role string

const (
	RoleUser   Role = "user"
	RoleWorker Role = "worker"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// Account is a vehicle owner, workshop operator or administrator.
type Account struct {
	ID           string `bson:"id" json:"id"`
	Role         Role   `bson:"role" json:"role"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	IsVerified   bool   `bson:"isVerified" json:"isVerified"`

	// Verification and reset tokens are written by the registration flow, which lives elsewhere.
	EmailVerificationToken   string     `bson:"emailVerificationToken,omitempty" json:"-"`
	EmailVerificationExpires *time.Time `bson:"emailVerificationExpires,omitempty" json:"-"`
	ResetPasswordToken       string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires     *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AccountSummary is the denormalized view embedded in listings and events.
type AccountSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the listing view of a.
func (a *Account) Summary() *AccountSummary {
	if a == nil {
		return nil
	}
	return &AccountSummary{ID: a.ID, Name: a.Name, Email: a.Email}
}

// AccountProfile is what an account may see about itself.
type AccountProfile struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile strips credentials and tokens from a.
func (a *Account) Profile() *AccountProfile {
	return &AccountProfile{
		ID:         a.ID,
		Role:       a.Role,
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}
