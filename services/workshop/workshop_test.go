package workshop

import (
	"context"
	"testing"

	workshopRepo "roadguard/database/repository/workshop"
	"roadguard/models"
	"roadguard/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type prefixResolver struct{}

func (prefixResolver) ResolveImageURL(ref string) string {
	if ref == "" {
		return ""
	}
	return "https://cdn.example.com/" + ref
}

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T) (*DefaultWorkshopService, *workshopRepo.MemoryWorkshopRepo) {
	t.Helper()
	ctx := context.Background()
	repo := workshopRepo.NewMemoryWorkshopRepo()

	rows := []models.Workshop{
		// About 1.1 km from the origin used below.
		{WorkerID: "w1", Name: "Near Garage", Location: models.NewGeoPoint(12.98, 77.59), RatingAvg: 3},
		// About 11 km away.
		{WorkerID: "w2", Name: "Far Garage", Location: models.NewGeoPoint(13.07, 77.59), RatingAvg: 5},
		{WorkerID: "w3", Name: "Unplaced Garage", RatingAvg: 4, Status: models.WorkshopClosed},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}
	return NewWorkshopService(repo, nil), repo
}

func names(rows []models.Workshop) []string {
	out := make([]string, len(rows))
	for i, w := range rows {
		out[i] = w.Name
	}
	return out
}

func TestListNearbyPutsUnknownDistanceLast(t *testing.T) {
	svc, _ := seed(t)

	rows, err := svc.List(context.Background(), models.WorkshopQuery{Lat: ptr(12.97), Lng: ptr(77.59)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Near Garage", "Far Garage", "Unplaced Garage"}, names(rows))

	require.NotNil(t, rows[0].DistanceKm)
	assert.InDelta(t, 1.11, *rows[0].DistanceKm, 0.01)
	assert.Nil(t, rows[2].DistanceKm)
}

func TestListRadiusKeepsRowsWithoutLocation(t *testing.T) {
	svc, _ := seed(t)

	rows, err := svc.List(context.Background(), models.WorkshopQuery{Lat: ptr(12.97), Lng: ptr(77.59), RadiusKm: ptr(5.0)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Near Garage", "Unplaced Garage"}, names(rows))
}

func TestListRatedAndStatus(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	rows, err := svc.List(ctx, models.WorkshopQuery{Sort: SortRated})
	require.NoError(t, err)
	assert.Equal(t, []string{"Far Garage", "Unplaced Garage", "Near Garage"}, names(rows))
	for _, w := range rows {
		assert.Nil(t, w.DistanceKm)
	}

	rows, err = svc.List(ctx, models.WorkshopQuery{Status: "open"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.List(ctx, models.WorkshopQuery{Q: "far"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Far Garage"}, names(rows))

	_, err = svc.List(ctx, models.WorkshopQuery{Status: "busy"})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestListIgnoresInvalidOrigin(t *testing.T) {
	svc, _ := seed(t)
	rows, err := svc.List(context.Background(), models.WorkshopQuery{Lat: ptr(12.97)})
	require.NoError(t, err)
	for _, w := range rows {
		assert.Nil(t, w.DistanceKm)
	}
}

func TestCreateOwn(t *testing.T) {
	svc, _ := seed(t)
	ctx := context.Background()

	_, err := svc.CreateOwn(ctx, "w9", models.WorkshopInput{Name: ptr("No Place")})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.CreateOwn(ctx, "w9", models.WorkshopInput{Lat: ptr(1.0), Lng: ptr(2.0)})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	created, err := svc.CreateOwn(ctx, "w9", models.WorkshopInput{
		Name:     ptr("  New Garage "),
		Lat:      ptr(12.9),
		Lng:      ptr(77.6),
		Images:   []string{"gallery/front", ""},
		Services: []models.OfferedService{{Name: "Wash"}, {Name: " "}},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Garage", created.Name)
	assert.Equal(t, "w9", created.WorkerID)
	assert.Equal(t, models.WorkshopOpen, created.Status)
	assert.Equal(t, []string{"gallery/front"}, created.Images)
	assert.Len(t, created.Services, 1)

	_, err = svc.CreateOwn(ctx, "w9", models.WorkshopInput{Name: ptr("Second"), Lat: ptr(1.0), Lng: ptr(2.0)})
	assert.True(t, utils.IsKind(err, utils.KindConflict))
}

func TestUpdateOwn(t *testing.T) {
	svc, repo := seed(t)
	ctx := context.Background()
	before, err := repo.GetByWorkerID(ctx, "w1")
	require.NoError(t, err)

	updated, err := svc.UpdateOwn(ctx, "w1", models.WorkshopInput{Status: ptr("closed"), Address: ptr("Brigade Road")})
	require.NoError(t, err)
	assert.Equal(t, models.WorkshopClosed, updated.Status)
	assert.Equal(t, "Brigade Road", updated.Address)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.RatingAvg, updated.RatingAvg)

	_, err = svc.UpdateOwn(ctx, "w1", models.WorkshopInput{Status: ptr("busy")})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.UpdateOwn(ctx, "w1", models.WorkshopInput{})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.UpdateOwn(ctx, "nobody", models.WorkshopInput{Address: ptr("x")})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestImagesResolvedWithoutMutatingStore(t *testing.T) {
	repo := workshopRepo.NewMemoryWorkshopRepo()
	ctx := context.Background()
	w := &models.Workshop{
		WorkerID: "w1",
		Name:     "Gallery",
		Images:   []string{"front", "https://elsewhere.example.com/side.jpg"},
		Services: []models.OfferedService{{Name: "Paint", ImageURL: "paint"}},
	}
	require.NoError(t, repo.Create(ctx, w))
	svc := NewWorkshopService(repo, prefixResolver{})

	got, err := svc.Get(ctx, w.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/front", got.Images[0])
	assert.Equal(t, "https://cdn.example.com/paint", got.Services[0].ImageURL)

	stored, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "paint", stored.Services[0].ImageURL)

	_, err = svc.Get(ctx, "missing", nil, nil)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
