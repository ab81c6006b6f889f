package models

import "time"

// AdminSettingsKey identifies the single settings document.
const AdminSettingsKey = "global"

// AdminSettings holds platform-wide switches controlled by admins.
type AdminSettings struct {
	Key            string    `bson:"key" json:"-"`
	OpenForRequest bool      `bson:"openForRequest" json:"openForRequest"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DefaultAdminSettings is what a fresh deployment starts with.
func DefaultAdminSettings() AdminSettings {
	return AdminSettings{Key: AdminSettingsKey, OpenForRequest: true, UpdatedAt: time.Now().UTC()}
}

// UpdateSettingsInput is the body of PATCH /admin/settings.
type UpdateSettingsInput struct {
	OpenForRequest *bool `json:"openForRequest"`
}
