package accountRepo

import (
	"context"

	"roadguard/models"
)

// AccountRepository defines methods for account data access.
// Lookups return database.ErrNotFound when nothing matches.
type AccountRepository interface {
	// GetByID retrieves an account by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetByIDs resolves many accounts at once, keyed by ID. Unknown IDs are absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Account, error)
	// GetByEmail retrieves an account by email, ignoring case.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// Create inserts a new account. Returns database.ErrDuplicate if the email is taken.
	Create(ctx context.Context, account *models.Account) error
}
