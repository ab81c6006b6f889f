package settingsRepo

import (
	"context"
	"sync"
	"time"

	"roadguard/models"
)

type MemorySettingsRepo struct {
	mu       sync.Mutex
	settings *models.AdminSettings
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{}
}

func (r *MemorySettingsRepo) load() *models.AdminSettings {
	if r.settings == nil {
		s := models.DefaultAdminSettings()
		r.settings = &s
	}
	return r.settings
}

func (r *MemorySettingsRepo) Get(_ context.Context) (*models.AdminSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *r.load()
	return &s, nil
}

func (r *MemorySettingsRepo) SetOpenForRequest(_ context.Context, open bool) (*models.AdminSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.load()
	s.OpenForRequest = open
	s.UpdatedAt = time.Now().UTC()
	out := *s
	return &out, nil
}
