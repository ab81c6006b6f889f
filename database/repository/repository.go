package repository

import (
	accountRepo "roadguard/database/repository/account"
	requestRepo "roadguard/database/repository/request"
	reviewRepo "roadguard/database/repository/review"
	settingsRepo "roadguard/database/repository/settings"
	workshopRepo "roadguard/database/repository/workshop"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type (
	AccountRepository        = accountRepo.AccountRepository
	WorkshopRepository       = workshopRepo.WorkshopRepository
	ServiceRequestRepository = requestRepo.ServiceRequestRepository
	ReviewRepository         = reviewRepo.ReviewRepository
	SettingsRepository       = settingsRepo.SettingsRepository
)

// Repositories groups every store the services depend on.
type Repositories struct {
	Accounts  AccountRepository
	Workshops WorkshopRepository
	Requests  ServiceRequestRepository
	Reviews   ReviewRepository
	Settings  SettingsRepository
}

// NewMongoRepositories builds Mongo-backed repositories and ensures their indexes.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Accounts:  accountRepo.NewMongoAccountRepo(db),
		Workshops: workshopRepo.NewMongoWorkshopRepo(db),
		Requests:  requestRepo.NewMongoServiceRequestRepo(db),
		Reviews:   reviewRepo.NewMongoReviewRepo(db),
		Settings:  settingsRepo.NewMongoSettingsRepo(db),
	}
}

// NewMemoryRepositories builds in-process repositories.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Accounts:  accountRepo.NewMemoryAccountRepo(),
		Workshops: workshopRepo.NewMemoryWorkshopRepo(),
		Requests:  requestRepo.NewMemoryServiceRequestRepo(),
		Reviews:   reviewRepo.NewMemoryReviewRepo(),
		Settings:  settingsRepo.NewMemorySettingsRepo(),
	}
}
