package workshopRepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"roadguard/database"
	"roadguard/models"
)

// MemoryWorkshopRepo keeps workshops in process.
type MemoryWorkshopRepo struct {
	mu       sync.RWMutex
	byID     map[string]models.Workshop
	byWorker map[string]string
}

func NewMemoryWorkshopRepo() *MemoryWorkshopRepo {
	return &MemoryWorkshopRepo{
		byID:     make(map[string]models.Workshop),
		byWorker: make(map[string]string),
	}
}

func (r *MemoryWorkshopRepo) Create(_ context.Context, w *models.Workshop) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareWorkshop(w)
	if _, taken := r.byWorker[w.WorkerID]; taken {
		return fmt.Errorf("workshop for worker %s: %w", w.WorkerID, database.ErrDuplicate)
	}
	r.byID[w.ID] = *w
	r.byWorker[w.WorkerID] = w.ID
	return nil
}

func (r *MemoryWorkshopRepo) GetByID(_ context.Context, id string) (*models.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("workshop %s: %w", id, database.ErrNotFound)
	}
	return &w, nil
}

func (r *MemoryWorkshopRepo) GetByWorkerID(_ context.Context, workerID string) (*models.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byWorker[workerID]
	if !ok {
		return nil, fmt.Errorf("workshop for worker %s: %w", workerID, database.ErrNotFound)
	}
	w := r.byID[id]
	return &w, nil
}

func (r *MemoryWorkshopRepo) GetByIDs(_ context.Context, ids []string) (map[string]models.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]models.Workshop, len(ids))
	for _, id := range ids {
		if w, ok := r.byID[id]; ok {
			out[id] = w
		}
	}
	return out, nil
}

func (r *MemoryWorkshopRepo) Find(_ context.Context, filter WorkshopFilter) ([]models.Workshop, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.NameContains)
	out := make([]models.Workshop, 0, len(r.byID))
	for _, w := range r.byID {
		if needle != "" && !strings.Contains(strings.ToLower(w.Name), needle) {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryWorkshopRepo) UpdateByWorker(_ context.Context, workerID string, patch models.WorkshopPatch) (*models.Workshop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byWorker[workerID]
	if !ok {
		return nil, fmt.Errorf("workshop for worker %s: %w", workerID, database.ErrNotFound)
	}
	w := r.byID[id]
	patch.Apply(&w)
	w.UpdatedAt = time.Now().UTC()
	r.byID[id] = w
	return &w, nil
}

func (r *MemoryWorkshopRepo) SetRating(_ context.Context, id string, agg models.RatingAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("workshop %s: %w", id, database.ErrNotFound)
	}
	w.RatingAvg = agg.Avg
	w.ReviewsCount = agg.Count
	r.byID[id] = w
	return nil
}
