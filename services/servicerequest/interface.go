package servicerequest

import (
	"context"
	"time"

	accountRepo "roadguard/database/repository/account"
	requestRepo "roadguard/database/repository/request"
	settingsRepo "roadguard/database/repository/settings"
	workshopRepo "roadguard/database/repository/workshop"
	"roadguard/models"
	"roadguard/services/notification"
)

// LifecycleService owns service requests from submission to the admin decision.
type LifecycleService interface {
	Create(ctx context.Context, requesterID string, input models.CreateServiceRequestInput) (*models.ServiceRequest, error)
	Get(ctx context.Context, id string) (*models.ServiceRequestView, error)
	ListAll(ctx context.Context) ([]models.ServiceRequestView, error)
	SetStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error)
	Stats(ctx context.Context) (*models.RequestStats, error)
}

// DefaultLifecycleService is the production implementation.
type DefaultLifecycleService struct {
	Requests  requestRepo.ServiceRequestRepository
	Accounts  accountRepo.AccountRepository
	Workshops workshopRepo.WorkshopRepository
	Settings  settingsRepo.SettingsRepository
	Notifier  notification.Publisher
}

// NewRequestEvent is the payload of service:new.
type NewRequestEvent struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	ImageURL         string                  `json:"imageUrl"`
	ServiceType      models.ServiceType      `json:"serviceType"`
	ServiceTimeStart *time.Time              `json:"serviceTimeStart,omitempty"`
	ServiceTimeEnd   *time.Time              `json:"serviceTimeEnd,omitempty"`
	User             *models.AccountSummary  `json:"user"`
	Workshop         *models.WorkshopSummary `json:"workshop,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// AcceptedEvent is the payload of service:accepted, sent to the worker's room.
type AcceptedEvent struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	ServiceType models.ServiceType      `json:"serviceType"`
	ImageURL    string                  `json:"imageUrl"`
	CreatedAt   time.Time               `json:"createdAt"`
	User        *models.AccountSummary  `json:"user"`
	Workshop    *models.WorkshopSummary `json:"workshop"`
	WorkshopID  string                  `json:"workshopId"`
	Lat         *float64                `json:"lat"`
	Lng         *float64                `json:"lng"`
	Status      models.RequestStatus    `json:"status"`
}
