package accountRepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"roadguard/database"
	"roadguard/models"
)

// MemoryAccountRepo keeps accounts in process. Used by the memory driver and tests.
type MemoryAccountRepo struct {
	mu      sync.RWMutex
	byID    map[string]models.Account
	byEmail map[string]string
}

func NewMemoryAccountRepo() *MemoryAccountRepo {
	return &MemoryAccountRepo{
		byID:    make(map[string]models.Account),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, database.ErrNotFound)
	}
	return &a, nil
}

func (r *MemoryAccountRepo) GetByIDs(_ context.Context, ids []string) (map[string]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.Account, len(ids))
	for _, id := range ids {
		if a, ok := r.byID[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (r *MemoryAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", email, database.ErrNotFound)
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareAccount(account)
	if _, taken := r.byEmail[account.Email]; taken {
		return fmt.Errorf("account %s: %w", account.Email, database.ErrDuplicate)
	}
	if _, taken := r.byID[account.ID]; taken {
		return fmt.Errorf("account %s: %w", account.ID, database.ErrDuplicate)
	}
	r.byID[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	return nil
}
