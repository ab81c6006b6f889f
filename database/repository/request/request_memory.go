package requestRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"roadguard/database"
	"roadguard/models"
)

type memoryEntry struct {
	seq int
	req models.ServiceRequest
}

// MemoryServiceRequestRepo keeps requests in process. The status update holds
// the write lock across compare and set.
type MemoryServiceRequestRepo struct {
	mu      sync.RWMutex
	seq     int
	entries map[string]*memoryEntry
}

func NewMemoryServiceRequestRepo() *MemoryServiceRequestRepo {
	return &MemoryServiceRequestRepo{entries: make(map[string]*memoryEntry)}
}

func (r *MemoryServiceRequestRepo) Create(_ context.Context, req *models.ServiceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prepareRequest(req)
	if _, taken := r.entries[req.ID]; taken {
		return fmt.Errorf("service request %s: %w", req.ID, database.ErrDuplicate)
	}
	r.seq++
	r.entries[req.ID] = &memoryEntry{seq: r.seq, req: *req}
	return nil
}

func (r *MemoryServiceRequestRepo) GetByID(_ context.Context, id string) (*models.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("service request %s: %w", id, database.ErrNotFound)
	}
	req := e.req
	return &req, nil
}

func (r *MemoryServiceRequestRepo) ListNewestFirst(_ context.Context) ([]models.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*memoryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	// Insertion order breaks ties between equal timestamps.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.req.CreatedAt.Equal(b.req.CreatedAt) {
			return a.req.CreatedAt.After(b.req.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]models.ServiceRequest, len(entries))
	for i, e := range entries {
		out[i] = e.req
	}
	return out, nil
}

func (r *MemoryServiceRequestRepo) UpdateStatusIfChanged(_ context.Context, id string, status models.RequestStatus) (*models.ServiceRequest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false, fmt.Errorf("service request %s: %w", id, database.ErrNotFound)
	}
	if e.req.Status == status {
		req := e.req
		return &req, false, nil
	}
	e.req.Status = status
	e.req.UpdatedAt = time.Now().UTC()
	req := e.req
	return &req, true, nil
}

func (r *MemoryServiceRequestRepo) CountByStatus(_ context.Context) (*models.RequestStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &models.RequestStats{}
	for _, e := range r.entries {
		addCount(stats, e.req.Status, 1)
	}
	return stats, nil
}
