package requestRepo

import (
	"context"

	"roadguard/models"
)

// ServiceRequestRepository defines methods for service-request data access.
type ServiceRequestRepository interface {
	Create(ctx context.Context, req *models.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*models.ServiceRequest, error)
	// ListNewestFirst returns every request ordered by creation time, newest first.
	ListNewestFirst(ctx context.Context) ([]models.ServiceRequest, error)
	// UpdateStatusIfChanged sets status on the request only when it differs from
	// the stored one. It returns the resulting record and whether a write happened.
	// An unknown id yields database.ErrNotFound.
	UpdateStatusIfChanged(ctx context.Context, id string, status models.RequestStatus) (*models.ServiceRequest, bool, error)
	CountByStatus(ctx context.Context) (*models.RequestStats, error)
}
