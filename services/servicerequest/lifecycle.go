package servicerequest

import (
	"context"
	"errors"
	"strings"

	"roadguard/database"
	"roadguard/metrics"
	"roadguard/models"
	"roadguard/services/notification"
	"roadguard/utils"

	"go.uber.org/zap"
)

func (s *DefaultLifecycleService) notifier() notification.Publisher {
	if s.Notifier == nil {
		return notification.Nop{}
	}
	return s.Notifier
}

// Create validates and stores a new pending request, then announces it to every observer.
func (s *DefaultLifecycleService) Create(ctx context.Context, requesterID string, input models.CreateServiceRequestInput) (*models.ServiceRequest, error) {
	logger := utils.GetLogger()

	if requesterID == "" {
		return nil, utils.NewUnauthorizedError("Unauthorized")
	}
	req, err := buildRequest(requesterID, input)
	if err != nil {
		return nil, err
	}

	if s.Settings != nil {
		settings, err := s.Settings.Get(ctx)
		if err != nil {
			return nil, utils.NewInternalError("Failed to load settings", err)
		}
		if !settings.OpenForRequest {
			return nil, utils.NewForbiddenError("Service requests are currently closed")
		}
	}

	if err := s.Requests.Create(ctx, req); err != nil {
		logger.Error("Failed to create service request", zap.String("userID", requesterID), zap.Error(err))
		return nil, utils.NewInternalError("Failed to create service request", err)
	}
	logger.Info("Service request created",
		zap.String("requestID", req.ID),
		zap.String("userID", requesterID),
		zap.String("serviceType", string(req.ServiceType)),
	)

	event := NewRequestEvent{
		ID:               req.ID,
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		ServiceType:      req.ServiceType,
		ServiceTimeStart: req.ServiceTimeStart,
		ServiceTimeEnd:   req.ServiceTimeEnd,
		User:             s.requester(ctx, requesterID),
		CreatedAt:        req.CreatedAt,
	}
	if req.WorkshopID != "" {
		if w, err := s.Workshops.GetByID(ctx, req.WorkshopID); err == nil {
			event.Workshop = &models.WorkshopSummary{ID: w.ID, Name: w.Name}
		}
	}
	if err := s.notifier().Broadcast(ctx, notification.EventServiceNew, event); err != nil {
		logger.Warn("Failed to publish service:new", zap.String("requestID", req.ID), zap.Error(err))
	}
	return req, nil
}

func buildRequest(requesterID string, input models.CreateServiceRequestInput) (*models.ServiceRequest, error) {
	name := strings.TrimSpace(input.Name)
	serviceType := models.ServiceType(strings.ToLower(strings.TrimSpace(input.ServiceType)))
	if name == "" || input.ServiceType == "" {
		return nil, utils.NewValidationError("Missing required fields")
	}
	if !serviceType.Valid() {
		return nil, utils.NewValidationError("serviceType must be instant or prebook")
	}

	req := &models.ServiceRequest{
		UserID:      requesterID,
		WorkshopID:  strings.TrimSpace(input.WorkshopID),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ServiceType: serviceType,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Status:      models.StatusPending,
	}

	// Start and end are not compared.
	if serviceType == models.ServicePrebook {
		if input.ServiceTimeStart.Empty() || input.ServiceTimeEnd.Empty() {
			return nil, utils.NewValidationError("serviceTimeStart and serviceTimeEnd are required for prebook")
		}
		start, err := input.ServiceTimeStart.Time()
		if err != nil {
			return nil, utils.NewValidationError("serviceTimeStart is not a valid time")
		}
		end, err := input.ServiceTimeEnd.Time()
		if err != nil {
			return nil, utils.NewValidationError("serviceTimeEnd is not a valid time")
		}
		req.ServiceTimeStart, req.ServiceTimeEnd = &start, &end
	}

	if !input.Lat.Empty() && !input.Lng.Empty() {
		lat, latErr := input.Lat.Float()
		lng, lngErr := input.Lng.Float()
		if latErr != nil || lngErr != nil || !utils.ValidCoordinates(lat, lng) {
			return nil, utils.NewValidationError("lat and lng must be valid coordinates")
		}
		req.Location = models.NewGeoPoint(lat, lng)
	}
	return req, nil
}

func (s *DefaultLifecycleService) Get(ctx context.Context, id string) (*models.ServiceRequestView, error) {
	req, err := s.Requests.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("Not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("Failed to load service request", err)
	}
	views, err := s.resolve(ctx, []models.ServiceRequest{*req})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListAll returns every request newest first with requester and workshop resolved.
func (s *DefaultLifecycleService) ListAll(ctx context.Context) ([]models.ServiceRequestView, error) {
	reqs, err := s.Requests.ListNewestFirst(ctx)
	if err != nil {
		utils.GetLogger().Error("Failed to list service requests", zap.Error(err))
		return nil, utils.NewInternalError("Failed to list service requests", err)
	}
	return s.resolve(ctx, reqs)
}

func (s *DefaultLifecycleService) resolve(ctx context.Context, reqs []models.ServiceRequest) ([]models.ServiceRequestView, error) {
	userIDs := make([]string, 0, len(reqs))
	workshopIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		userIDs = append(userIDs, r.UserID)
		if r.WorkshopID != "" {
			workshopIDs = append(workshopIDs, r.WorkshopID)
		}
	}

	accounts, err := s.Accounts.GetByIDs(ctx, dedupe(userIDs))
	if err != nil {
		return nil, utils.NewInternalError("Failed to resolve requesters", err)
	}
	workshops, err := s.Workshops.GetByIDs(ctx, dedupe(workshopIDs))
	if err != nil {
		return nil, utils.NewInternalError("Failed to resolve workshops", err)
	}

	views := make([]models.ServiceRequestView, 0, len(reqs))
	for _, r := range reqs {
		view := models.ServiceRequestView{ServiceRequest: r}
		if a, ok := accounts[r.UserID]; ok {
			view.User = a.Summary()
		}
		if w, ok := workshops[r.WorkshopID]; ok {
			view.Workshop = &models.WorkshopSummary{ID: w.ID, Name: w.Name}
		}
		views = append(views, view)
	}
	return views, nil
}

// SetStatus records an admin decision. Repeating the current status is a no-op
// that notifies nobody; a committed move into accepted notifies the worker
// who owns the linked workshop.
func (s *DefaultLifecycleService) SetStatus(ctx context.Context, id, status string) (*models.ServiceRequest, error) {
	logger := utils.GetLogger()

	next := models.RequestStatus(strings.ToLower(strings.TrimSpace(status)))
	if !next.Valid() {
		return nil, utils.NewValidationError("Invalid status")
	}

	req, changed, err := s.Requests.UpdateStatusIfChanged(ctx, id, next)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NewNotFoundError("Not found")
	}
	if err != nil {
		logger.Error("Failed to update service status", zap.String("requestID", id), zap.Error(err))
		return nil, utils.NewInternalError("Failed to update service status", err)
	}
	if !changed {
		logger.Debug("Service status unchanged", zap.String("requestID", id), zap.String("status", string(next)))
		return req, nil
	}

	metrics.ServiceRequestTransitions.WithLabelValues(string(next)).Inc()
	logger.Info("Service status updated", zap.String("requestID", id), zap.String("status", string(next)))

	if next == models.StatusAccepted {
		s.notifyAccepted(ctx, req)
	}
	return req, nil
}

func (s *DefaultLifecycleService) notifyAccepted(ctx context.Context, req *models.ServiceRequest) {
	logger := utils.GetLogger()
	if req.WorkshopID == "" {
		return
	}
	w, err := s.Workshops.GetByID(ctx, req.WorkshopID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			logger.Warn("Failed to resolve workshop for accepted request", zap.String("requestID", req.ID), zap.Error(err))
		}
		return
	}
	if w.WorkerID == "" {
		return
	}

	event := AcceptedEvent{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ServiceType: req.ServiceType,
		ImageURL:    req.ImageURL,
		CreatedAt:   req.CreatedAt,
		User:        s.requester(ctx, req.UserID),
		Workshop:    &models.WorkshopSummary{ID: w.ID, Name: w.Name, Address: w.Address},
		WorkshopID:  w.ID,
		Status:      req.Status,
	}
	if lat, lng, ok := req.Location.LatLng(); ok {
		event.Lat, event.Lng = &lat, &lng
	}
	if err := s.notifier().SendToRoom(ctx, w.WorkerID, notification.EventServiceAccepted, event); err != nil {
		logger.Warn("Failed to publish service:accepted",
			zap.String("requestID", req.ID),
			zap.String("workerID", w.WorkerID),
			zap.Error(err),
		)
	}
}

func (s *DefaultLifecycleService) Stats(ctx context.Context) (*models.RequestStats, error) {
	stats, err := s.Requests.CountByStatus(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to load stats", err)
	}
	return stats, nil
}

// requester falls back to an id-only summary when the account cannot be read.
func (s *DefaultLifecycleService) requester(ctx context.Context, id string) *models.AccountSummary {
	account, err := s.Accounts.GetByID(ctx, id)
	if err != nil {
		return &models.AccountSummary{ID: id}
	}
	return account.Summary()
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

