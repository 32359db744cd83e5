package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenways/greenways/internal/api"
	"github.com/greenways/greenways/internal/api/models"
	"github.com/greenways/greenways/internal/auth"
	"github.com/greenways/greenways/internal/route"
)

// stubPlanner returns a canned route options response.
type stubPlanner struct {
	response *models.RouteOptionsResponse
}

func (p *stubPlanner) PlanRoutes(ctx context.Context, origin, destination string) *models.RouteOptionsResponse {
	return p.response
}

// testAuthService creates an auth service for testing.
func testAuthService() *auth.Service {
	return auth.NewService(
		auth.NewInMemoryUserRepository(),
		testJWTService(),
		zerolog.Nop(),
	)
}

// testJWTService creates a JWT service for generating test tokens.
func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.greenways.app",
		Audience:   "greenways-api",
	})
}

// generateTestToken generates a valid test token for a user.
func generateTestToken(t *testing.T) string {
	t.Helper()
	jwtService := testJWTService()
	user := &auth.User{
		ID:        "usr_testuser123",
		Name:      "Test User",
		Email:     "test@example.com",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	token, _, err := jwtService.GenerateAccessToken(user)
	require.NoError(t, err)
	return token
}

func testPlannerResponse() *models.RouteOptionsResponse {
	return &models.RouteOptionsResponse{
		Routes: []models.RouteOption{
			{
				Origin:         "Amsterdam, Netherlands",
				Destination:    "Utrecht, Netherlands",
				Distance:       models.TextValue{Text: "46.1 km", Value: 46100},
				Duration:       models.TextValue{Text: "38 mins", Value: 2280},
				Mode:           models.ModeDriving,
				CarbonEmission: 8.85,
				IsFastest:      true,
			},
			{
				Origin:         "Amsterdam, Netherlands",
				Destination:    "Utrecht, Netherlands",
				Distance:       models.TextValue{Text: "43.5 km", Value: 43500},
				Duration:       models.TextValue{Text: "2 hours 10 mins", Value: 7800},
				Mode:           models.ModeBicycling,
				CarbonEmission: 0,
				IsGreenest:     true,
			},
		},
		Recommendations: []string{
			"Consider carpooling to reduce per-person carbon emissions.",
			"Working from home, when possible, can eliminate commute emissions entirely.",
		},
	}
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	routeService := route.NewService(route.NewInMemoryRepository(), nil, zerolog.Nop())
	return api.NewRouter(api.RouterConfig{
		Version:      "test",
		BuildTime:    "2024-01-01T00:00:00Z",
		Logger:       logger,
		AuthService:  testAuthService(),
		Planner:      &stubPlanner{response: testPlannerResponse()},
		RouteService: routeService,
	})
}

// addAuthHeader adds a valid Bearer token to the request.
func addAuthHeader(t *testing.T, req *http.Request) {
	t.Helper()
	token := generateTestToken(t)
	req.Header.Set("Authorization", "Bearer "+token)
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)
	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	router := newTestRouter()

	// Register
	body := `{"name":"Ada Lovelace","email":"ada@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.Equal(t, "User registered successfully", registered.Message)
	assert.Equal(t, "Ada Lovelace", registered.User.Name)
	assert.NotEmpty(t, registered.Token)

	// Login with the same credentials
	body = `{"email":"ada@example.com","password":"correct-horse"}`
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loggedIn models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loggedIn))
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestRouter_Login_InvalidCredentials(t *testing.T) {
	router := newTestRouter()

	body := `{"email":"nobody@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
}

func TestRouter_RouteOptions_RequiresAuth(t *testing.T) {
	router := newTestRouter()

	body := `{"origin":"Amsterdam","destination":"Utrecht"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/routes/options", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_RouteOptions(t *testing.T) {
	router := newTestRouter()

	body := `{"origin":"Amsterdam","destination":"Utrecht"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/routes/options", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.RouteOptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Routes, 2)
	assert.Len(t, resp.Recommendations, 2)
}

func TestRouter_RouteOptions_MissingPlaces(t *testing.T) {
	router := newTestRouter()

	body := `{"origin":"Amsterdam"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/routes/options", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_SaveListDeleteRoute(t *testing.T) {
	router := newTestRouter()

	// Save
	saveBody := `{
		"userId": "usr_testuser123",
		"routeData": {
			"origin": "Amsterdam, Netherlands",
			"destination": "Utrecht, Netherlands",
			"distance": {"text": "46.1 km", "value": 46100},
			"duration": {"text": "38 mins", "value": 2280},
			"mode": "transit",
			"carbonEmission": 2.31
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/routes/save", bytes.NewBufferString(saveBody))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saveResp models.SaveRouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saveResp))
	assert.Equal(t, "Route saved successfully", saveResp.Message)
	assert.NotEmpty(t, saveResp.Route.ID)

	// List
	req = httptest.NewRequest(http.MethodGet, "/v1/routes/user/usr_testuser123", http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var routes []models.SavedRoute
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	require.Len(t, routes, 1)
	assert.Equal(t, saveResp.Route.ID, routes[0].ID)

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/v1/routes/"+saveResp.Route.ID, http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var deleteResp models.DeleteRouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleteResp))
	assert.True(t, deleteResp.Success)
	assert.Equal(t, saveResp.Route.ID, deleteResp.DeletedRoute.ID)

	// Second delete is a 404
	req = httptest.NewRequest(http.MethodDelete, "/v1/routes/"+saveResp.Route.ID, http.NoBody)
	addAuthHeader(t, req)
	w = httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SaveRoute_MissingFields(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/routes/save", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(t, req)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
