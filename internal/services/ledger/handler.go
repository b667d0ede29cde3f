package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"comanda/internal/logger"
	"comanda/internal/models"
	"comanda/internal/server"
)

// Handler handles HTTP requests for the table ledger
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the ledger routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/tables/open", h.openTable)
	r.Get("/api/tables/open/{userID}", h.listOpenByUser)
	r.Get("/api/tables/restaurant/open/{userID}", h.listOpenByRestaurant)
	r.Get("/api/tables/restaurant/closed/{userID}", h.listClosedByRestaurant)
	r.Put("/api/tables/close/{tableID}", h.closeTable)
	r.Put("/api/tables/add-dish/{tableID}", h.attachDish)
	r.Delete("/api/tables/{tableID}", h.deleteTable)
	r.Get("/api/tables/{tableID}/qrcode", h.checkQR)
}

func (h *Handler) openTable(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	var req models.OpenTableRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		server.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	table, err := h.service.OpenTable(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("open_table_failed", "Failed to open table", requestID, err, map[string]interface{}{
			"table_name": req.Name,
		})
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusCreated, table)
}

func (h *Handler) attachDish(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	tableID, err := pathID(r, "tableID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	var req models.AttachDishRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		server.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if err := req.Validate(); err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}
	dishID, _ := uuid.Parse(req.DishID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	table, err := h.service.AttachDish(ctx, tableID, dishID, requestID)
	if err != nil {
		h.logger.Error("attach_dish_failed", "Failed to add dish to table", requestID, err, map[string]interface{}{
			"table_id": tableID.String(),
			"dish_id":  req.DishID,
		})
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusOK, table)
}

func (h *Handler) closeTable(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	tableID, err := pathID(r, "tableID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	table, err := h.service.CloseTable(ctx, tableID, requestID)
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusOK, table)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	tableID, err := pathID(r, "tableID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteTable(ctx, tableID, requestID); err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusOK, map[string]string{"message": "Table deleted successfully."})
}

func (h *Handler) listOpenByUser(w http.ResponseWriter, r *http.Request) {
	h.listTables(w, r, h.service.ListOpenByUser)
}

func (h *Handler) listOpenByRestaurant(w http.ResponseWriter, r *http.Request) {
	h.listTables(w, r, h.service.ListOpenByRestaurant)
}

func (h *Handler) listClosedByRestaurant(w http.ResponseWriter, r *http.Request) {
	h.listTables(w, r, h.service.ListClosedByRestaurant)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request, list func(context.Context, uuid.UUID) ([]models.Table, error)) {
	requestID := server.RequestIDFrom(r.Context())

	userID, err := pathID(r, "userID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	tables, err := list(ctx, userID)
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	// An empty result is a valid outcome, not an error
	server.WriteJSON(w, http.StatusOK, tables)
}

func (h *Handler) checkQR(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	tableID, err := pathID(r, "tableID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	png, err := h.service.CheckQR(ctx, tableID)
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// pathID parses a UUID URL parameter
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid id: %w", name, models.ErrValidation)
	}
	return id, nil
}
