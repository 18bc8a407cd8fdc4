package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
	"github.com/delilar/avito-intenship-2025/internal/platform/logger"
	"github.com/delilar/avito-intenship-2025/internal/repository"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logger.NoOp{})
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(entity.Listing{
			ID:       "42",
			Name:     "Two-room flat",
			Category: entity.CategoryRealEstate,
			Area:     50,
		})
	})

	got, err := client.Get(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Two-room flat", got.Name)
	assert.Equal(t, float64(50), got.Area)
}

func TestClient_Get_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClient_Create(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body entity.Listing
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Sedan", body.Name)
		assert.Empty(t, body.ID)

		body.ID = "7"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	got, err := client.Create(context.Background(), entity.Listing{
		Name:     "Sedan",
		Category: entity.CategoryVehicle,
		Brand:    "Toyota",
		Model:    "Camry",
		Year:     2015,
	})

	require.NoError(t, err)
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, 2015, got.Year)
}

func TestClient_Update(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/items/7", r.URL.Path)

		var body entity.Listing
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(body)
	})

	got, err := client.Update(context.Background(), "7", entity.Listing{ID: "7", Name: "Sedan, price drop"})

	require.NoError(t, err)
	assert.Equal(t, "Sedan, price drop", got.Name)
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]entity.Listing{{ID: "1"}, {ID: "2"}})
	})

	got, err := client.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := client.Get(context.Background(), "42")

	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_CancelledContext(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Get(ctx, "42")

	assert.True(t, errors.Is(err, context.Canceled), "expected context.Canceled, got %v", err)
}
