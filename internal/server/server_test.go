package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrago/carbon-advisor/internal/actions"
	"github.com/terrago/carbon-advisor/internal/household"
	"github.com/terrago/carbon-advisor/internal/server/middleware"
	"github.com/terrago/carbon-advisor/internal/server/ratelimit"
	"github.com/terrago/carbon-advisor/internal/types"
)

const scenarioBody = `{
	"postcode": "SW1A 1AA",
	"adults": 2,
	"cars": 1,
	"fuel_type": "petrol",
	"trips_per_week": 6,
	"diet": "normal",
	"solar": "no"
}`

// mockStore implements Store in memory
type mockStore struct {
	mu          sync.Mutex
	assessments map[uuid.UUID]*types.Assessment
	err         error
}

func newMockStore() *mockStore {
	return &mockStore{assessments: make(map[uuid.UUID]*types.Assessment)}
}

func (m *mockStore) SaveAssessment(_ context.Context, a *types.Assessment) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assessments[a.ID] = a
	return nil
}

func (m *mockStore) GetAssessment(_ context.Context, id uuid.UUID) (*types.Assessment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[id]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (m *mockStore) ListAssessmentsByPostcode(_ context.Context, postcode string) ([]types.Assessment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Assessment
	for _, a := range m.assessments {
		if strings.EqualFold(a.Profile.Postcode, postcode) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func newTestServer(store Store) *Server {
	return newServer(store, nil, nil, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	w := do(t, newTestServer(nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode[map[string]string](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "disabled", resp["storage"])

	resp = decode[map[string]string](t, do(t, newTestServer(newMockStore()), http.MethodGet, "/health", ""))
	assert.Equal(t, "enabled", resp["storage"])
}

func TestFootprintEndpoint(t *testing.T) {
	w := do(t, newTestServer(nil), http.MethodPost, "/footprint", scenarioBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[FootprintResponse](t, w)
	assert.InDelta(t, 8304.5, resp.AnnualTotalKgCO2e, 1e-9)
	require.NotNil(t, resp.TransportAnnual)
	assert.InDelta(t, 504.5, *resp.TransportAnnual, 1e-9)
	assert.InDelta(t, 5000, *resp.DietAnnual, 1e-9)
	assert.InDelta(t, 2800, *resp.ElectricityAnnual, 1e-9)
	assert.Len(t, resp.Equivalencies, 4)
}

func TestFootprintEndpoint_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"empty body", "", "", "household profile is required"},
		{"malformed json", `{"postcode": `, "", "load error"},
		{"unknown diet", strings.Replace(scenarioBody, `"normal"`, `"keto"`, 1), "diet", "invalid profile"},
		{"missing solar", strings.Replace(scenarioBody, `"solar": "no"`, `"extra": 1`, 1), "solar", "invalid profile"},
		{"negative adults", strings.Replace(scenarioBody, `"adults": 2`, `"adults": -1`, 1), "adults", "invalid profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(nil), http.MethodPost, "/footprint", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			resp := decode[errorBody](t, w)
			assert.Contains(t, resp.Error, tt.msg)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestFootprintEndpoint_BodyTooLarge(t *testing.T) {
	body := `{"postcode": "` + strings.Repeat("A", maxBodyBytes) + `"}`
	w := do(t, newTestServer(nil), http.MethodPost, "/footprint", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "request body too large")
}

func TestActionsEndpoint(t *testing.T) {
	w := do(t, newTestServer(nil), http.MethodPost, "/actions", scenarioBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[ActionsResponse](t, w)
	assert.Len(t, resp.Actions, actions.SelectionSize)
	assert.Equal(t, []types.ActionID{
		actions.WalkOrCycleShortTrip,
		actions.CombineErrands,
		actions.FuelSavingDriving,
		actions.PublicTransportWeekly,
		actions.MeatFreeMeal,
		actions.SwitchOffAppliances,
		actions.ColdWaterLaundry,
		actions.AirDryLaundry,
	}, resp.IDs)
}

func TestCreateAssessment_WithStore(t *testing.T) {
	store := newMockStore()
	s := newTestServer(store)

	w := do(t, s, http.MethodPost, "/assessments", scenarioBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[types.Assessment](t, w)
	assert.Equal(t, "/assessments/"+resp.ID.String(), w.Header().Get("Location"))
	assert.Equal(t, "fixed", resp.Renderer)
	assert.InDelta(t, 8304.5, resp.Footprint.TotalAnnual, 1e-9)
	assert.Len(t, resp.Actions.Actions, actions.SelectionSize)
	assert.Contains(t, store.assessments, resp.ID)

	// Round trip through GET
	w = do(t, s, http.MethodGet, "/assessments/"+resp.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[types.Assessment](t, w)
	assert.Equal(t, resp.ID, got.ID)

	w = do(t, s, http.MethodGet, "/assessments?postcode=sw1a%201aa", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[AssessmentListResponse](t, w)
	assert.Len(t, list.Assessments, 1)
}

func TestCreateAssessment_WithoutStore(t *testing.T) {
	w := do(t, newTestServer(nil), http.MethodPost, "/assessments", scenarioBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestCreateAssessment_StoreFailure(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("connection reset by peer")

	w := do(t, newTestServer(store), http.MethodPost, "/assessments", scenarioBody)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode[errorBody](t, w).Error, "details stay in the logs")
}

func TestErrorResponse_CarriesRequestID(t *testing.T) {
	s := newTestServer(nil)

	w := do(t, s, http.MethodPost, "/footprint", `{"adults": `)
	require.Equal(t, http.StatusBadRequest, w.Code)
	id := w.Header().Get(middleware.RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, decode[errorBody](t, w).RequestID)

	req := httptest.NewRequest(http.MethodPost, "/footprint", strings.NewReader(strings.Replace(scenarioBody, `"normal"`, `"keto"`, 1)))
	req.Header.Set(middleware.RequestIDHeader, "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b", decode[errorBody](t, w).RequestID)
}

func TestGetAssessment(t *testing.T) {
	store := newMockStore()
	s := newTestServer(store)

	tests := []struct {
		name   string
		server *Server
		target string
		status int
	}{
		{"bad id", s, "/assessments/not-a-uuid", http.StatusBadRequest},
		{"unknown id", s, "/assessments/" + uuid.NewString(), http.StatusNotFound},
		{"no storage", newTestServer(nil), "/assessments/" + uuid.NewString(), http.StatusServiceUnavailable},
		{"list without postcode", s, "/assessments", http.StatusBadRequest},
		{"list without storage", newTestServer(nil), "/assessments?postcode=AB1", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, tt.server, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[errorBody](t, w).Error)
		})
	}
}

func TestListAssessments_EmptyIsArray(t *testing.T) {
	w := do(t, newTestServer(newMockStore()), http.MethodGet, "/assessments?postcode=ZZ9", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"postcode": "ZZ9", "assessments": []}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	w := do(t, newTestServer(nil), http.MethodGet, "/footprint", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()
	s := newServer(nil, nil, limiter, zerolog.Nop())

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodPost, "/footprint", scenarioBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodPost, "/footprint", scenarioBody)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))

	resp := decode[map[string]any](t, w)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// Health checks are never limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{&household.InvalidProfileError{Field: "diet"}, http.StatusBadRequest},
		{&household.LoadError{Message: "bad json"}, http.StatusBadRequest},
		{&ErrValidation{Field: "id"}, http.StatusBadRequest},
		{&ErrAssessmentNotFound{ID: uuid.New()}, http.StatusNotFound},
		{&ErrStoreUnavailable{}, http.StatusServiceUnavailable},
		{&actions.InsufficientCandidatesError{Eligible: 7, Required: 8}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "%T", tt.err)
	}
}

func TestPublicError(t *testing.T) {
	body := publicError(&household.InvalidProfileError{Field: "solar", Message: "is required"}, http.StatusBadRequest)
	assert.Equal(t, "solar", body.Field)
	assert.Equal(t, "invalid profile: solar is required", body.Error)

	assert.Equal(t, "internal server error", publicError(errors.New("secret"), http.StatusInternalServerError).Error)
	assert.Equal(t, "assessment storage is not configured",
		publicError(&ErrStoreUnavailable{}, http.StatusServiceUnavailable).Error)
}
