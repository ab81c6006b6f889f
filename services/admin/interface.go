package admin

import (
	"context"

	settingsRepo "roadguard/database/repository/settings"
	"roadguard/models"
)

type AdminService interface {
	GetSettings(ctx context.Context) (*models.AdminSettings, error)
	UpdateSettings(ctx context.Context, input models.UpdateSettingsInput) (*models.AdminSettings, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Settings settingsRepo.SettingsRepository
}
