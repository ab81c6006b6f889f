package workshop

import (
	"context"

	workshopRepo "roadguard/database/repository/workshop"
	"roadguard/models"
	"roadguard/services/storage"
)

// WorkshopService exposes the public directory and the worker's own workshop.
type WorkshopService interface {
	List(ctx context.Context, query models.WorkshopQuery) ([]models.Workshop, error)
	Get(ctx context.Context, id string, lat, lng *float64) (*models.Workshop, error)
	GetOwn(ctx context.Context, workerID string) (*models.Workshop, error)
	CreateOwn(ctx context.Context, workerID string, input models.WorkshopInput) (*models.Workshop, error)
	UpdateOwn(ctx context.Context, workerID string, input models.WorkshopInput) (*models.Workshop, error)
}

// DefaultWorkshopService is the production implementation.
type DefaultWorkshopService struct {
	Repo   workshopRepo.WorkshopRepository
	Images storage.ImageResolver
}

func NewWorkshopService(repo workshopRepo.WorkshopRepository, images storage.ImageResolver) *DefaultWorkshopService {
	if images == nil {
		images = storage.PassthroughResolver{}
	}
	return &DefaultWorkshopService{Repo: repo, Images: images}
}
