package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/logger"
	"comanda/internal/models"
)

func newTestRouter(store Store) http.Handler {
	log := logger.New("test")
	service, _ := newTestService(store)
	router := chi.NewRouter()
	NewHandler(service, log).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeTable(t *testing.T, rec *httptest.ResponseRecorder) models.Table {
	t.Helper()
	var table models.Table
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&table))
	return table
}

func TestTableRoutes_Lifecycle(t *testing.T) {
	store := newMemStore()
	restaurant := store.addRestaurant("Cafe")
	user := store.addUser(restaurant.ID)
	coffee := store.addDish(restaurant.ID, "Coffee", 3.50)
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/api/tables/open", openRequest("T1", user))
	require.Equal(t, http.StatusCreated, rec.Code)
	table := decodeTable(t, rec)
	assert.True(t, table.IsOpen)
	assert.Zero(t, table.Total)

	attach := models.AttachDishRequest{DishID: coffee.ID.String()}
	rec = doJSON(t, router, http.MethodPut, "/api/tables/add-dish/"+table.ID.String(), attach)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 3.50, decodeTable(t, rec).Total, 0.001)

	rec = doJSON(t, router, http.MethodPut, "/api/tables/add-dish/"+table.ID.String(), attach)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeTable(t, rec)
	assert.InDelta(t, 7.00, updated.Total, 0.001)
	assert.Len(t, updated.Dishes, 2)

	rec = doJSON(t, router, http.MethodGet, "/api/tables/open/"+user.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var open []models.Table
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&open))
	require.Len(t, open, 1)

	rec = doJSON(t, router, http.MethodPut, "/api/tables/close/"+table.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	closed := decodeTable(t, rec)
	assert.False(t, closed.IsOpen)
	assert.NotNil(t, closed.ClosedAt)

	// Closed tables drop out of the open listing
	rec = doJSON(t, router, http.MethodGet, "/api/tables/open/"+user.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	open = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&open))
	assert.Empty(t, open)

	rec = doJSON(t, router, http.MethodDelete, "/api/tables/"+table.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&deleted))
	assert.Equal(t, "Table deleted successfully.", deleted["message"])
}

func TestTableRoutes_ErrorStatuses(t *testing.T) {
	store := newMemStore()
	restaurant := store.addRestaurant("Cafe")
	other := store.addRestaurant("Bistro")
	user := store.addUser(restaurant.ID)
	foreign := store.addDish(other.ID, "Sushi", 15.00)
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/api/tables/open", openRequest("T1", user))
	require.Equal(t, http.StatusCreated, rec.Code)
	table := decodeTable(t, rec)

	t.Run("malformed body is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tables/open", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown body field is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/tables/open", map[string]string{"surprise": "field"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate open name is 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/tables/open", openRequest("T1", user))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("cross restaurant dish is 400", func(t *testing.T) {
		attach := models.AttachDishRequest{DishID: foreign.ID.String()}
		rec := doJSON(t, router, http.MethodPut, "/api/tables/add-dish/"+table.ID.String(), attach)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown table is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/tables/close/%s", "11111111-1111-1111-1111-111111111111"), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-uuid path id is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/tables/close/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("closing twice is 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/tables/close/"+table.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = doJSON(t, router, http.MethodPut, "/api/tables/close/"+table.ID.String(), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Contains(t, body, "error")
		assert.Contains(t, body, "timestamp")
	})

	t.Run("attach on a closed table is 409", func(t *testing.T) {
		dish := store.addDish(restaurant.ID, "Coffee", 3.50)
		attach := models.AttachDishRequest{DishID: dish.ID.String()}
		rec := doJSON(t, router, http.MethodPut, "/api/tables/add-dish/"+table.ID.String(), attach)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestTableRoutes_CheckQR(t *testing.T) {
	store := newMemStore()
	restaurant := store.addRestaurant("Cafe")
	user := store.addUser(restaurant.ID)
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/api/tables/open", openRequest("T1", user))
	require.Equal(t, http.StatusCreated, rec.Code)
	table := decodeTable(t, rec)

	rec = doJSON(t, router, http.MethodGet, "/api/tables/"+table.ID.String()+"/qrcode", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}
