package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/panels"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/repositories/state"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
)

func newVehicleCatalog(t *testing.T, handler http.Handler, repo state.Repository) (*Catalog[models.Vehicle], *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, srv.Client(), session.NewStore(), testLogger())
	res := api.NewResource[models.Vehicle](client, api.ResourceSpec{Name: "vehicles", Path: "/vehicles", PublicList: true})
	panel := panels.NewPanel(res, testLogger())
	return NewCatalog(panel, repo, "vehicles", testLogger()), srv
}

func TestCatalog_Load_SavesSnapshot(t *testing.T) {
	repo := newFakeRepository()
	cat, _ := newVehicleCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]models.Vehicle{{ID: "v1", Brand: "Toyota"}}))
	}), repo)

	stale, err := cat.Load(context.Background(), api.ListOptions{})
	require.NoError(t, err)
	assert.False(t, stale)

	raw := repo.values[state.CacheKey("vehicles")]
	require.NotNil(t, raw)
	var cached []models.Vehicle
	require.NoError(t, json.Unmarshal(raw, &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "Toyota", cached[0].Brand)
}

func TestCatalog_Load_FallsBackToSnapshotOnTransportFailure(t *testing.T) {
	repo := newFakeRepository()
	snapshot, err := json.Marshal([]models.Vehicle{{ID: "v1", Brand: "Toyota"}, {ID: "v2"}})
	require.NoError(t, err)
	repo.values[state.CacheKey("vehicles")] = snapshot

	cat, srv := newVehicleCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), repo)
	srv.Close()

	stale, err := cat.Load(context.Background(), api.ListOptions{})
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, panels.Loaded, cat.Panel().Phase())
	assert.Len(t, cat.Panel().Items(), 2)
}

func TestCatalog_Load_TransportFailureWithoutSnapshot(t *testing.T) {
	cat, srv := newVehicleCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), newFakeRepository())
	srv.Close()

	stale, err := cat.Load(context.Background(), api.ListOptions{})
	require.Error(t, err)
	assert.False(t, stale)

	var fetchErr *api.FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, panels.LoadError, cat.Panel().Phase())
}

func TestCatalog_Load_NonTransportFailurePassesThrough(t *testing.T) {
	repo := newFakeRepository()
	repo.values[state.CacheKey("vehicles")] = []byte(`[{"id":"v1"}]`)

	cat, _ := newVehicleCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), repo)

	stale, err := cat.Load(context.Background(), api.ListOptions{})
	require.Error(t, err)
	assert.False(t, stale)

	// a server that answered, even badly, must not be masked by old data
	var statusErr *api.UnexpectedStatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, panels.LoadError, cat.Panel().Phase())
}

func TestCatalog_Load_CorruptSnapshotSurfacesOriginalError(t *testing.T) {
	repo := newFakeRepository()
	repo.values[state.CacheKey("vehicles")] = []byte("{not json")

	cat, srv := newVehicleCatalog(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), repo)
	srv.Close()

	stale, err := cat.Load(context.Background(), api.ListOptions{})
	require.Error(t, err)
	assert.False(t, stale)

	var fetchErr *api.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
