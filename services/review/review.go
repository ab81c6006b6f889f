package review

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"roadguard/database"
	"roadguard/models"
	"roadguard/utils"

	"go.uber.org/zap"
)

func (s *DefaultReviewService) Upsert(ctx context.Context, reviewerID string, role models.Role, input models.ReviewInput) (*models.Review, error) {
	logger := utils.GetLogger()

	if role != models.RoleUser {
		return nil, utils.NewForbiddenError("User only")
	}
	workshopID := strings.TrimSpace(input.WorkshopID)
	if workshopID == "" {
		return nil, utils.NewValidationError("workshopId is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, utils.NewValidationError("Rating must be an integer between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, utils.NewValidationError("Comment must be at most 1000 characters")
	}

	if _, err := s.Workshops.GetByID(ctx, workshopID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFoundError("Workshop not found")
		}
		return nil, utils.NewInternalError("Failed to load workshop", err)
	}

	stored, err := s.Reviews.Upsert(ctx, &models.Review{
		WorkshopID: workshopID,
		UserID:     reviewerID,
		Rating:     input.Rating,
		Comment:    comment,
	})
	if err != nil {
		logger.Error("Failed to save review", zap.String("workshopID", workshopID), zap.String("userID", reviewerID), zap.Error(err))
		return nil, utils.NewInternalError("Failed to save review", err)
	}

	agg, err := s.Reviews.Aggregate(ctx, workshopID)
	if err != nil {
		logger.Error("Failed to aggregate reviews", zap.String("workshopID", workshopID), zap.Error(err))
		return nil, utils.NewInternalError("Failed to update workshop rating", err)
	}
	if err := s.Workshops.SetRating(ctx, workshopID, agg); err != nil {
		logger.Error("Failed to update workshop rating", zap.String("workshopID", workshopID), zap.Error(err))
		return nil, utils.NewInternalError("Failed to update workshop rating", err)
	}

	logger.Info("Review saved",
		zap.String("workshopID", workshopID),
		zap.Int("rating", stored.Rating),
		zap.Float64("ratingAvg", agg.Avg),
		zap.Int("reviewsCount", agg.Count),
	)
	return stored, nil
}

func (s *DefaultReviewService) ListByWorkshop(ctx context.Context, workshopID string) ([]models.ReviewView, error) {
	reviews, err := s.Reviews.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list reviews", err)
	}

	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}
	accounts, err := s.Accounts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewInternalError("Failed to resolve reviewers", err)
	}

	out := make([]models.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		view := models.ReviewView{Review: r}
		if a, ok := accounts[r.UserID]; ok {
			view.User = a.Summary()
		}
		out = append(out, view)
	}
	return out, nil
}
