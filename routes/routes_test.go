package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roadguard/database/repository"
	"roadguard/handlers"
	"roadguard/models"
	"roadguard/services/admin"
	"roadguard/services/auth"
	"roadguard/services/notification/notificationtest"
	"roadguard/services/review"
	"roadguard/services/servicerequest"
	"roadguard/services/workshop"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const password = "s3cret-pass"

type testApp struct {
	router   *gin.Engine
	recorder *notificationtest.Recorder
	repos    *repository.Repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewMemoryRepositories()
	recorder := &notificationtest.Recorder{}

	authService := &auth.DefaultAuthService{
		Repo:          repos.Accounts,
		AdminUsername: "root",
		AdminPassword: "hunter2",
	}
	lifecycle := &servicerequest.DefaultLifecycleService{
		Requests:  repos.Requests,
		Accounts:  repos.Accounts,
		Workshops: repos.Workshops,
		Settings:  repos.Settings,
		Notifier:  recorder,
	}
	authHandler := handlers.NewAuthHandler(authService)
	workshopHandler := handlers.NewWorkshopHandler(workshop.NewWorkshopService(repos.Workshops, nil))
	requestHandler := handlers.NewServiceRequestHandler(lifecycle)
	reviewHandler := handlers.NewReviewHandler(&review.DefaultReviewService{
		Reviews:   repos.Reviews,
		Workshops: repos.Workshops,
		Accounts:  repos.Accounts,
	})

	hb := &handlers.HandlerBundle{
		AuthService: authService,

		UserLoginHandler:     authHandler.UserLoginHandler,
		AdminLoginHandler:    authHandler.AdminLoginHandler,
		ValidateTokenHandler: authHandler.ValidateTokenHandler,
		GetProfileHandler:    authHandler.GetProfileHandler,

		ListWorkshopsHandler:     workshopHandler.ListWorkshopsHandler,
		GetWorkshopHandler:       workshopHandler.GetWorkshopHandler,
		GetOwnWorkshopHandler:    workshopHandler.GetOwnWorkshopHandler,
		CreateOwnWorkshopHandler: workshopHandler.CreateOwnWorkshopHandler,
		UpdateOwnWorkshopHandler: workshopHandler.UpdateOwnWorkshopHandler,

		CreateServiceRequestHandler: requestHandler.CreateServiceRequestHandler,
		GetServiceRequestHandler:    requestHandler.GetServiceRequestHandler,

		CreateReviewHandler:        reviewHandler.CreateReviewHandler,
		ListWorkshopReviewsHandler: reviewHandler.ListWorkshopReviewsHandler,

		AdminHandler:  handlers.NewAdminHandler(lifecycle, &admin.DefaultAdminService{Settings: repos.Settings}),
		HealthHandler: handlers.HealthHandler,
	}

	router := gin.New()
	router.Use(utils.ErrorHandler())
	RegisterRoutes(router, hb)

	app := &testApp{router: router, recorder: recorder, repos: repos}
	app.account(t, models.RoleUser, "driver@example.com")
	app.account(t, models.RoleWorker, "mechanic@example.com")
	return app
}

func (a *testApp) account(t *testing.T, role models.Role, email string) *models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	acc := &models.Account{Role: role, Name: email, Email: email, PasswordHash: string(hash), IsVerified: true}
	require.NoError(t, a.repos.Accounts.Create(context.Background(), acc))
	return acc
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/user/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testApp) adminLogin(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{"username": "root", "password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestLoginAndProfile(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/auth/user/login", "", map[string]string{"email": "driver@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)

	token := app.login(t, "DRIVER@example.com")
	w = app.do(t, http.MethodGet, "/api/user/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.AccountProfile
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &profile))
	assert.Equal(t, "driver@example.com", profile.Email)
	assert.Equal(t, models.RoleUser, profile.Role)

	w = app.do(t, http.MethodGet, "/api/auth/validate", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/user/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/user/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A user token is not an admin token.
	w = app.do(t, http.MethodGet, "/api/admin/stats", app.login(t, "driver@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/api/workshops/me/own", app.login(t, "driver@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWorkerManagesOwnWorkshop(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "mechanic@example.com")

	w := app.do(t, http.MethodGet, "/api/workshops/me/own", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodPost, "/api/workshops/me", token, map[string]interface{}{
		"name": "Highway Auto Care", "address": "NH48", "lat": 12.97, "lng": 77.59,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Workshop
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	w = app.do(t, http.MethodPost, "/api/workshops/me", token, map[string]interface{}{
		"name": "Second", "lat": 1.0, "lng": 1.0,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPatch, "/api/workshops/me", token, map[string]interface{}{"status": "closed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/workshops?status=closed", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []models.Workshop
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	w = app.do(t, http.MethodGet, "/api/workshops/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodGet, "/api/workshops/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceRequestLifecycle(t *testing.T) {
	app := newTestApp(t)
	driver := app.login(t, "driver@example.com")
	admin := app.adminLogin(t)

	w := app.do(t, http.MethodPost, "/api/services", driver, map[string]interface{}{
		"name": "Battery dead", "description": "Needs a jump", "serviceType": "instant", "lat": "12.9", "lng": "77.6",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created models.ServiceRequest
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, models.StatusPending, created.Status)
	require.Len(t, app.recorder.Events("service:new"), 1)

	w = app.do(t, http.MethodGet, "/api/services/"+created.ID, driver, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPatch, "/api/admin/service-requests/"+created.ID+"/status", admin, map[string]string{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPatch, "/api/admin/service-requests/"+created.ID+"/status", admin, map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.RequestStats
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, models.RequestStats{Total: 1, Rejected: 1}, stats)

	w = app.do(t, http.MethodGet, "/api/admin/service-requests", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []models.ServiceRequestView
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &views))
	require.Len(t, views, 1)
	require.NotNil(t, views[0].User)
	assert.Equal(t, "driver@example.com", views[0].User.Email)
}

func TestMultipartSubmissionRejected(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "driver@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/services", bytes.NewBufferString("--x--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestClosedSettingsBlockSubmissions(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminLogin(t)
	driver := app.login(t, "driver@example.com")

	w := app.do(t, http.MethodPatch, "/api/admin/settings", admin, map[string]interface{}{"openForRequest": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/api/services", driver, map[string]interface{}{"name": "Tow", "serviceType": "instant"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Non-boolean values leave the switch untouched.
	w = app.do(t, http.MethodPatch, "/api/admin/settings", admin, map[string]interface{}{"openForRequest": "yes"})
	require.Equal(t, http.StatusOK, w.Code)
	var settings models.AdminSettings
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &settings))
	assert.False(t, settings.OpenForRequest)
}

func TestReviewFlow(t *testing.T) {
	app := newTestApp(t)
	worker := app.login(t, "mechanic@example.com")
	driver := app.login(t, "driver@example.com")

	w := app.do(t, http.MethodPost, "/api/workshops/me", worker, map[string]interface{}{"name": "Ace Garage", "lat": 10.0, "lng": 76.0})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ws models.Workshop
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &ws))

	w = app.do(t, http.MethodPost, "/api/reviews", worker, map[string]interface{}{"workshopId": ws.ID, "rating": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/api/reviews", driver, map[string]interface{}{"workshopId": ws.ID, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/reviews", driver, map[string]interface{}{"workshopId": ws.ID, "rating": 4, "comment": "Quick"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/workshops/"+ws.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Workshop
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
	assert.Equal(t, 4.0, updated.RatingAvg)
	assert.Equal(t, 1, updated.ReviewsCount)

	w = app.do(t, http.MethodGet, "/api/reviews/workshops/"+ws.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
