package settingsRepo

import (
	"context"

	"roadguard/models"
)

// SettingsRepository stores the single admin settings document.
type SettingsRepository interface {
	// Get returns the settings, creating the defaults on first read.
	Get(ctx context.Context) (*models.AdminSettings, error)
	SetOpenForRequest(ctx context.Context, open bool) (*models.AdminSettings, error)
}
