package reviewRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"roadguard/models"

	"github.com/google/uuid"
)

type reviewKey struct {
	workshopID string
	userID     string
}

// MemoryReviewRepo keeps reviews in process, keyed like the Mongo unique index.
type MemoryReviewRepo struct {
	mu   sync.RWMutex
	rows map[reviewKey]models.Review
}

func NewMemoryReviewRepo() *MemoryReviewRepo {
	return &MemoryReviewRepo{rows: make(map[reviewKey]models.Review)}
}

func (r *MemoryReviewRepo) Upsert(_ context.Context, review *models.Review) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reviewKey{workshopID: review.WorkshopID, userID: review.UserID}
	stored, exists := r.rows[key]
	if !exists {
		stored = models.Review{ID: uuid.New().String(), WorkshopID: review.WorkshopID, UserID: review.UserID}
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	stored.CreatedAt = time.Now().UTC()
	r.rows[key] = stored
	return &stored, nil
}

func (r *MemoryReviewRepo) ListByWorkshop(_ context.Context, workshopID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Review, 0)
	for key, rv := range r.rows {
		if key.workshopID == workshopID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryReviewRepo) Aggregate(_ context.Context, workshopID string) (models.RatingAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count int
	for key, rv := range r.rows {
		if key.workshopID == workshopID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return models.RatingAggregate{}, nil
	}
	return models.RatingAggregate{Avg: float64(sum) / float64(count), Count: count}, nil
}

// Count returns the number of stored rows.
func (r *MemoryReviewRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
