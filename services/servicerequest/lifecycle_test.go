package servicerequest

import (
	"context"
	"errors"
	"testing"
	"time"

	accountRepo "roadguard/database/repository/account"
	requestRepo "roadguard/database/repository/request"
	settingsRepo "roadguard/database/repository/settings"
	workshopRepo "roadguard/database/repository/workshop"
	"roadguard/models"
	"roadguard/services/notification"
	"roadguard/services/notification/notificationtest"
	"roadguard/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *DefaultLifecycleService
	requests *requestRepo.MemoryServiceRequestRepo
	settings *settingsRepo.MemorySettingsRepo
	recorder *notificationtest.Recorder
	driver   *models.Account
	workshop *models.Workshop
	workerID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	accounts := accountRepo.NewMemoryAccountRepo()
	workshops := workshopRepo.NewMemoryWorkshopRepo()
	requests := requestRepo.NewMemoryServiceRequestRepo()
	settings := settingsRepo.NewMemorySettingsRepo()
	recorder := &notificationtest.Recorder{}

	driver := &models.Account{Role: models.RoleUser, Name: "Ravi", Email: "ravi@example.com"}
	require.NoError(t, accounts.Create(ctx, driver))
	worker := &models.Account{Role: models.RoleWorker, Name: "Meera", Email: "meera@example.com"}
	require.NoError(t, accounts.Create(ctx, worker))
	w := &models.Workshop{WorkerID: worker.ID, Name: "Meera Motors", Address: "MG Road"}
	require.NoError(t, workshops.Create(ctx, w))

	return &fixture{
		svc: &DefaultLifecycleService{
			Requests:  requests,
			Accounts:  accounts,
			Workshops: workshops,
			Settings:  settings,
			Notifier:  recorder,
		},
		requests: requests,
		settings: settings,
		recorder: recorder,
		driver:   driver,
		workshop: w,
		workerID: worker.ID,
	}
}

func (f *fixture) create(t *testing.T, input models.CreateServiceRequestInput) *models.ServiceRequest {
	t.Helper()
	req, err := f.svc.Create(context.Background(), f.driver.ID, input)
	require.NoError(t, err)
	return req
}

func TestCreateInstantBroadcastsNewRequest(t *testing.T) {
	f := newFixture(t)

	req := f.create(t, models.CreateServiceRequestInput{
		Name:        "Flat tyre",
		Description: "Rear left",
		ServiceType: "instant",
		WorkshopID:  f.workshop.ID,
		Lat:         "12.97",
		Lng:         "77.59",
		ImageURL:    "https://img.example.com/tyre.jpg",
	})
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, f.driver.ID, req.UserID)
	require.NotNil(t, req.Location)
	assert.Equal(t, []float64{77.59, 12.97}, req.Location.Coordinates)

	sent := f.recorder.Events(notification.EventServiceNew)
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].Room)

	event, ok := sent[0].Payload.(NewRequestEvent)
	require.True(t, ok)
	assert.Equal(t, req.ID, event.ID)
	assert.Equal(t, "Flat tyre", event.Name)
	assert.Equal(t, "https://img.example.com/tyre.jpg", event.ImageURL)
	assert.Equal(t, &models.AccountSummary{ID: f.driver.ID, Name: "Ravi", Email: "ravi@example.com"}, event.User)
	require.NotNil(t, event.Workshop)
	assert.Equal(t, "Meera Motors", event.Workshop.Name)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]models.CreateServiceRequestInput{
		"missing name":       {ServiceType: "instant"},
		"missing type":       {Name: "Tow"},
		"unknown type":       {Name: "Tow", ServiceType: "someday"},
		"prebook no window":  {Name: "Service", ServiceType: "prebook"},
		"prebook bad start":  {Name: "Service", ServiceType: "prebook", ServiceTimeStart: "tomorrow", ServiceTimeEnd: "2025-03-01T10:00"},
		"bad coordinates":    {Name: "Tow", ServiceType: "instant", Lat: "north", Lng: "77"},
		"out of range coord": {Name: "Tow", ServiceType: "instant", Lat: "95", Lng: "77"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.driver.ID, input)
			assert.True(t, utils.IsKind(err, utils.KindValidation), "got %v", err)
		})
	}

	list, err := f.requests.ListNewestFirst(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.recorder.All())
}

func TestCreatePrebookCoercesTimestamps(t *testing.T) {
	f := newFixture(t)

	req := f.create(t, models.CreateServiceRequestInput{
		Name:             "Oil change",
		ServiceType:      "prebook",
		ServiceTimeStart: "2025-03-01T09:30",
		ServiceTimeEnd:   "1740825000000",
	})
	require.NotNil(t, req.ServiceTimeStart)
	require.NotNil(t, req.ServiceTimeEnd)
	assert.True(t, time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC).Equal(*req.ServiceTimeStart))
	assert.True(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC).Equal(*req.ServiceTimeEnd))
}

func TestCreatePrebookAcceptsInvertedWindow(t *testing.T) {
	f := newFixture(t)

	req := f.create(t, models.CreateServiceRequestInput{
		Name:             "Detailing",
		ServiceType:      "prebook",
		ServiceTimeStart: "2025-03-02 10:00:00",
		ServiceTimeEnd:   "2025-03-01 10:00:00",
	})
	assert.True(t, req.ServiceTimeStart.After(*req.ServiceTimeEnd))
}

func TestCreateRejectedWhileClosed(t *testing.T) {
	f := newFixture(t)
	_, err := f.settings.SetOpenForRequest(context.Background(), false)
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.driver.ID, models.CreateServiceRequestInput{Name: "Tow", ServiceType: "instant"})
	assert.True(t, utils.IsKind(err, utils.KindForbidden))
	assert.Empty(t, f.recorder.All())
}

func TestCreateSurvivesPublisherFailure(t *testing.T) {
	f := newFixture(t)
	f.recorder.Err = errors.New("socket layer down")

	req := f.create(t, models.CreateServiceRequestInput{Name: "Tow", ServiceType: "instant"})
	stored, err := f.requests.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestSetStatusAcceptedNotifiesWorkerRoom(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.CreateServiceRequestInput{
		Name: "Battery", ServiceType: "instant", WorkshopID: f.workshop.ID, Lat: "12.5", Lng: "77.5",
	})
	f.recorder.Reset()

	updated, err := f.svc.SetStatus(context.Background(), req.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	sent := f.recorder.Events(notification.EventServiceAccepted)
	require.Len(t, sent, 1)
	assert.Equal(t, f.workerID, sent[0].Room)

	event, ok := sent[0].Payload.(AcceptedEvent)
	require.True(t, ok)
	assert.Equal(t, req.ID, event.ID)
	assert.Equal(t, models.StatusAccepted, event.Status)
	assert.Equal(t, f.workshop.ID, event.WorkshopID)
	assert.Equal(t, "MG Road", event.Workshop.Address)
	assert.Equal(t, "Ravi", event.User.Name)
	require.NotNil(t, event.Lat)
	assert.Equal(t, 12.5, *event.Lat)
	assert.Equal(t, 77.5, *event.Lng)
}

func TestSetStatusRepeatIsSilent(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.CreateServiceRequestInput{Name: "Battery", ServiceType: "instant", WorkshopID: f.workshop.ID})

	_, err := f.svc.SetStatus(context.Background(), req.ID, "accepted")
	require.NoError(t, err)
	again, err := f.svc.SetStatus(context.Background(), req.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, again.Status)

	assert.Len(t, f.recorder.Events(notification.EventServiceAccepted), 1)
}

func TestSetStatusWithoutWorkshopSkipsNotification(t *testing.T) {
	f := newFixture(t)
	orphan := f.create(t, models.CreateServiceRequestInput{Name: "Jump start", ServiceType: "instant"})
	dangling := f.create(t, models.CreateServiceRequestInput{Name: "Tow", ServiceType: "instant", WorkshopID: "gone"})

	for _, id := range []string{orphan.ID, dangling.ID} {
		updated, err := f.svc.SetStatus(context.Background(), id, "accepted")
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, updated.Status)
	}
	assert.Empty(t, f.recorder.Events(notification.EventServiceAccepted))
}

func TestSetStatusRejectAndBackToPending(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.CreateServiceRequestInput{Name: "Tow", ServiceType: "instant", WorkshopID: f.workshop.ID})

	_, err := f.svc.SetStatus(context.Background(), req.ID, "rejected")
	require.NoError(t, err)
	back, err := f.svc.SetStatus(context.Background(), req.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, back.Status)
	assert.Empty(t, f.recorder.Events(notification.EventServiceAccepted))
}

func TestSetStatusErrors(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.CreateServiceRequestInput{Name: "Tow", ServiceType: "instant"})

	_, err := f.svc.SetStatus(context.Background(), req.ID, "done")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = f.svc.SetStatus(context.Background(), "missing", "accepted")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestListAllResolvesNames(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, models.CreateServiceRequestInput{Name: "First", ServiceType: "instant", WorkshopID: f.workshop.ID})
	second := f.create(t, models.CreateServiceRequestInput{Name: "Second", ServiceType: "instant"})

	views, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, second.ID, views[0].ID)
	assert.Nil(t, views[0].Workshop)
	assert.Equal(t, first.ID, views[1].ID)
	assert.Equal(t, "Meera Motors", views[1].Workshop.Name)
	for _, v := range views {
		require.NotNil(t, v.User)
		assert.Equal(t, "ravi@example.com", v.User.Email)
	}
}

func TestGetAndStats(t *testing.T) {
	f := newFixture(t)
	req := f.create(t, models.CreateServiceRequestInput{Name: "Tow", ServiceType: "instant"})
	f.create(t, models.CreateServiceRequestInput{Name: "Tyre", ServiceType: "instant"})
	_, err := f.svc.SetStatus(context.Background(), req.ID, "accepted")
	require.NoError(t, err)

	view, err := f.svc.Get(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", view.User.Name)

	_, err = f.svc.Get(context.Background(), "missing")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RequestStats{Total: 2, Pending: 1, Accepted: 1}, *stats)
}
