package workshopRepo

import (
	"context"

	"roadguard/models"
)

// DefaultLimit caps directory listings.
const DefaultLimit = 200

// WorkshopFilter narrows a directory scan.
type WorkshopFilter struct {
	// NameContains matches the workshop name case-insensitively.
	NameContains string
	// Status is empty for any status.
	Status models.WorkshopStatus
	Limit  int64
}

// WorkshopRepository defines methods for workshop data access.
type WorkshopRepository interface {
	// Create inserts a workshop. Returns database.ErrDuplicate if the worker already owns one.
	Create(ctx context.Context, w *models.Workshop) error
	GetByID(ctx context.Context, id string) (*models.Workshop, error)
	GetByWorkerID(ctx context.Context, workerID string) (*models.Workshop, error)
	// GetByIDs resolves many workshops at once, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Workshop, error)
	Find(ctx context.Context, filter WorkshopFilter) ([]models.Workshop, error)
	// UpdateByWorker applies patch to the worker's workshop and returns the result.
	UpdateByWorker(ctx context.Context, workerID string, patch models.WorkshopPatch) (*models.Workshop, error)
	// SetRating overwrites the aggregate rating fields only.
	SetRating(ctx context.Context, id string, agg models.RatingAggregate) error
}
