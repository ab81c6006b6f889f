package config

// Firebase topics that mirror realtime events for devices that are offline.
const (
	FirebaseAdminTopic        = "admins"
	FirebaseWorkerTopicPrefix = "worker-"
)

// FirebaseEnabled reports whether a service account was configured.
func FirebaseEnabled() bool {
	return AppConfig.FirebaseCredentialsFile != ""
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func CloudinaryEnabled() bool {
	return AppConfig.CloudinaryCloudName != "" &&
		AppConfig.CloudinaryAPIKey != "" &&
		AppConfig.CloudinaryAPISecret != ""
}

// RedisEnabled reports whether the cross-instance event relay should start.
func RedisEnabled() bool {
	return AppConfig.RedisAddr != ""
}
