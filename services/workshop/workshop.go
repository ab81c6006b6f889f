package workshop

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"roadguard/database"
	workshopRepo "roadguard/database/repository/workshop"
	"roadguard/models"
	"roadguard/services/storage"
	"roadguard/utils"

	"go.uber.org/zap"
)

const (
	SortNearby = "nearby"
	SortRated  = "rated"
)

// List returns the public directory. When both lat and lng are valid every row
// carries its distance and the radius filter and nearby sort apply.
func (s *DefaultWorkshopService) List(ctx context.Context, query models.WorkshopQuery) ([]models.Workshop, error) {
	filter := workshopRepo.WorkshopFilter{
		NameContains: strings.TrimSpace(query.Q),
		Limit:        workshopRepo.DefaultLimit,
	}
	switch status := strings.ToLower(strings.TrimSpace(query.Status)); status {
	case "", "all":
	default:
		if !models.WorkshopStatus(status).Valid() {
			return nil, utils.NewValidationError("status must be open, closed or all")
		}
		filter.Status = models.WorkshopStatus(status)
	}

	rows, err := s.Repo.Find(ctx, filter)
	if err != nil {
		utils.GetLogger().Error("Failed to list workshops", zap.Error(err))
		return nil, utils.NewInternalError("Failed to list workshops", err)
	}

	lat, lng, located := origin(query.Lat, query.Lng)
	out := make([]models.Workshop, 0, len(rows))
	for i := range rows {
		w := rows[i]
		if located {
			w.DistanceKm = distanceTo(&w, lat, lng)
			if query.RadiusKm != nil && *query.RadiusKm > 0 && w.DistanceKm != nil && *w.DistanceKm > *query.RadiusKm {
				continue
			}
		}
		s.resolveImages(&w)
		out = append(out, w)
	}

	sortBy := strings.ToLower(strings.TrimSpace(query.Sort))
	if sortBy == "" {
		sortBy = SortNearby
	}
	switch {
	case sortBy == SortRated:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RatingAvg > out[j].RatingAvg })
	case sortBy == SortNearby && located:
		sort.SliceStable(out, func(i, j int) bool { return distanceOrInf(out[i]) < distanceOrInf(out[j]) })
	}
	return out, nil
}

func (s *DefaultWorkshopService) Get(ctx context.Context, id string, lat, lng *float64) (*models.Workshop, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("Workshop not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load workshop", err)
	}
	if la, ln, ok := origin(lat, lng); ok {
		w.DistanceKm = distanceTo(w, la, ln)
	}
	s.resolveImages(w)
	return w, nil
}

func (s *DefaultWorkshopService) GetOwn(ctx context.Context, workerID string) (*models.Workshop, error) {
	w, err := s.Repo.GetByWorkerID(ctx, workerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("No workshop found for this worker")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load workshop", err)
	}
	s.resolveImages(w)
	return w, nil
}

func (s *DefaultWorkshopService) CreateOwn(ctx context.Context, workerID string, input models.WorkshopInput) (*models.Workshop, error) {
	logger := utils.GetLogger()

	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if input.Lat == nil || input.Lng == nil {
		return nil, utils.NewValidationError("lat and lng are required")
	}
	patch, err := toPatch(input)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByWorkerID(ctx, workerID); err == nil {
		return nil, utils.NewConflictError("Workshop already exists for this worker")
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewInternalError("Failed to create workshop", err)
	}

	w := &models.Workshop{WorkerID: workerID}
	patch.Apply(w)
	if err := s.Repo.Create(ctx, w); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.NewConflictError("Workshop already exists for this worker")
		}
		logger.Error("Failed to create workshop", zap.String("workerID", workerID), zap.Error(err))
		return nil, utils.NewInternalError("Failed to create workshop", err)
	}

	logger.Info("Workshop created", zap.String("workshopID", w.ID), zap.String("workerID", workerID))
	s.resolveImages(w)
	return w, nil
}

func (s *DefaultWorkshopService) UpdateOwn(ctx context.Context, workerID string, input models.WorkshopInput) (*models.Workshop, error) {
	patch, err := toPatch(input)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, utils.NewValidationError("No updatable fields provided")
	}

	w, err := s.Repo.UpdateByWorker(ctx, workerID, patch)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("No workshop found for this worker")
	}
	if err != nil {
		utils.GetLogger().Error("Failed to update workshop", zap.String("workerID", workerID), zap.Error(err))
		return nil, utils.NewInternalError("Failed to update workshop", err)
	}
	s.resolveImages(w)
	return w, nil
}

// toPatch validates a create or update body.
func toPatch(input models.WorkshopInput) (models.WorkshopPatch, error) {
	var patch models.WorkshopPatch

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return patch, utils.NewValidationError("name cannot be empty")
		}
		patch.Name = &name
	}
	if input.Status != nil {
		status := models.WorkshopStatus(strings.ToLower(strings.TrimSpace(*input.Status)))
		if !status.Valid() {
			return patch, utils.NewValidationError("status must be open or closed")
		}
		patch.Status = &status
	}
	if (input.Lat == nil) != (input.Lng == nil) {
		return patch, utils.NewValidationError("lat and lng must be provided together")
	}
	if input.Lat != nil {
		if !utils.ValidCoordinates(*input.Lat, *input.Lng) {
			return patch, utils.NewValidationError("lat or lng out of range")
		}
		patch.Location = models.NewGeoPoint(*input.Lat, *input.Lng)
	}

	patch.Address = input.Address
	patch.Description = input.Description
	patch.OwnerContact = input.OwnerContact
	patch.Social = input.Social
	if input.Images != nil {
		patch.Images = compact(input.Images)
	}
	if input.Services != nil {
		services := make([]models.OfferedService, 0, len(input.Services))
		for _, svc := range input.Services {
			svc.Name = strings.TrimSpace(svc.Name)
			if svc.Name == "" {
				continue
			}
			services = append(services, svc)
		}
		patch.Services = services
	}
	return patch, nil
}

func (s *DefaultWorkshopService) resolveImages(w *models.Workshop) {
	w.Images = storage.ResolveAll(s.Images, w.Images)
	services := make([]models.OfferedService, len(w.Services))
	for i, svc := range w.Services {
		svc.ImageURL = s.Images.ResolveImageURL(svc.ImageURL)
		services[i] = svc
	}
	w.Services = services
}

func origin(lat, lng *float64) (float64, float64, bool) {
	if lat == nil || lng == nil || !utils.ValidCoordinates(*lat, *lng) {
		return 0, 0, false
	}
	return *lat, *lng, true
}

func distanceTo(w *models.Workshop, lat, lng float64) *float64 {
	wlat, wlng, ok := w.Location.LatLng()
	if !ok {
		return nil
	}
	d := utils.HaversineDistance(lat, lng, wlat, wlng)
	return &d
}

func distanceOrInf(w models.Workshop) float64 {
	if w.DistanceKm == nil {
		return math.Inf(1)
	}
	return *w.DistanceKm
}

func compact(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref = strings.TrimSpace(ref); ref != "" {
			out = append(out, ref)
		}
	}
	return out
}
