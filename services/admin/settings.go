package admin

import (
	"context"

	"roadguard/models"
	"roadguard/utils"

	"go.uber.org/zap"
)

// GetSettings returns the platform switches, creating the defaults on first read.
func (a *DefaultAdminService) GetSettings(ctx context.Context) (*models.AdminSettings, error) {
	settings, err := a.Settings.Get(ctx)
	if err != nil {
		utils.GetLogger().Error("Failed to load admin settings", zap.Error(err))
		return nil, utils.NewInternalError("Failed to load settings", err)
	}
	return settings, nil
}

// UpdateSettings writes the provided switches. An empty body returns the current settings.
func (a *DefaultAdminService) UpdateSettings(ctx context.Context, input models.UpdateSettingsInput) (*models.AdminSettings, error) {
	if input.OpenForRequest == nil {
		return a.GetSettings(ctx)
	}
	settings, err := a.Settings.SetOpenForRequest(ctx, *input.OpenForRequest)
	if err != nil {
		utils.GetLogger().Error("Failed to update admin settings", zap.Error(err))
		return nil, utils.NewInternalError("Failed to update settings", err)
	}
	utils.GetLogger().Info("Admin settings updated", zap.Bool("openForRequest", settings.OpenForRequest))
	return settings, nil
}
