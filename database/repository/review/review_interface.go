package reviewRepo

import (
	"context"

	"roadguard/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Upsert writes the review keyed by (workshopId, userId), overwriting rating,
	// comment and timestamp of an existing row. Returns the stored review.
	Upsert(ctx context.Context, review *models.Review) (*models.Review, error)
	// ListByWorkshop returns the workshop's reviews, newest first.
	ListByWorkshop(ctx context.Context, workshopID string) ([]models.Review, error)
	// Aggregate averages every review of the workshop. Zero values when there are none.
	Aggregate(ctx context.Context, workshopID string) (models.RatingAggregate, error)
}
