package review

import (
	"context"

	accountRepo "roadguard/database/repository/account"
	reviewRepo "roadguard/database/repository/review"
	workshopRepo "roadguard/database/repository/workshop"
	"roadguard/models"
)

// MaxCommentLength bounds a review comment, in characters.
const MaxCommentLength = 1000

type ReviewService interface {
	// Upsert stores the reviewer's single review of a workshop and refreshes the workshop rating.
	Upsert(ctx context.Context, reviewerID string, role models.Role, input models.ReviewInput) (*models.Review, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]models.ReviewView, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews   reviewRepo.ReviewRepository
	Workshops workshopRepo.WorkshopRepository
	Accounts  accountRepo.AccountRepository
}
