package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tripapp "github.com/fieldsales/backend/internal/application/trip"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/trip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memTripRepo struct {
	trips map[uuid.UUID]*trip.Trip
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{trips: make(map[uuid.UUID]*trip.Trip)}
}

func (r *memTripRepo) FindByID(_ context.Context, id uuid.UUID) (*trip.Trip, error) {
	if t, ok := r.trips[id]; ok {
		return t, nil
	}
	return nil, trip.ErrTripNotFound
}

func (r *memTripRepo) FindAll(_ context.Context, _ shared.Filter) (*shared.Paginated[*trip.Trip], error) {
	out := make([]*trip.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, t)
	}
	page := shared.NewPaginated(out, int64(len(out)), 1, 20)
	return &page, nil
}

func (r *memTripRepo) Save(_ context.Context, t *trip.Trip) error {
	r.trips[t.ID] = t
	return nil
}

func newTripTestRouter(t *testing.T) (*gin.Engine, *memTripRepo) {
	t.Helper()
	repo := newMemTripRepo()
	h := NewTripHandler(tripapp.NewTripService(repo))

	engine := gin.New()
	engine.POST("/trips", h.Create)
	engine.GET("/trips", h.List)
	engine.GET("/trips/:id", h.Get)
	engine.POST("/trips/:id/start", h.Start)
	engine.POST("/trips/:id/end", h.End)
	engine.POST("/trips/:id/cash-submission", h.RecordCashSubmission)
	return engine, repo
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestTripHandlerLifecycle(t *testing.T) {
	engine, _ := newTripTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/trips", gin.H{
		"distributor_name": "John Mwangi",
		"vehicle_reg":      "KCA 123X",
		"route":            "Thika Road",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data TripResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "PENDING", created.Data.Status)
	tripID := created.Data.ID

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/trips/%s/start", tripID), gin.H{"start_odometer": 1000})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/trips/%s/end", tripID), gin.H{"end_odometer": 1145})
	require.Equal(t, http.StatusOK, w.Code)

	var ended struct {
		Data TripResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ended))
	assert.Equal(t, "ENDED", ended.Data.Status)
	assert.Equal(t, 145, ended.Data.TotalKm)

	w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/trips/%s/cash-submission", tripID), gin.H{"amount": 820.50})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestTripHandlerErrors(t *testing.T) {
	engine, repo := newTripTestRouter(t)

	t.Run("missing distributor name", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/trips", gin.H{"vehicle_reg": "KCA 123X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown trip", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/trips/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodGet, "/trips/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("end below start odometer", func(t *testing.T) {
		created, err := trip.NewTrip("Jane", "KBT 456Y", "Mombasa Road")
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), created))

		w := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/trips/%s/start", created.ID), gin.H{"start_odometer": 2000})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodPost, fmt.Sprintf("/trips/%s/end", created.ID), gin.H{"end_odometer": 1500})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("cash submission before trip ends", func(t *testing.T) {
		created, err := trip.NewTrip("Peter", "KDA 789Z", "Ngong Road")
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), created))

		w := doJSON(t, engine, http.MethodPost, fmt.Sprintf("/trips/%s/cash-submission", created.ID), gin.H{"amount": 100})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
