package catalog

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

// Handler handles HTTP requests for the dish catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/dishes", h.createDish)
	r.Get("/api/dishes/restaurant/{restaurantID}", h.listDishes)
	r.Delete("/api/dishes/{dishID}", h.deleteDish)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	var req models.CreateDishRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		server.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dish, err := h.service.CreateDish(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("create_dish_failed", "Failed to create dish", requestID, err, map[string]interface{}{
			"dish_name": req.Name,
		})
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusCreated, dish)
}

func (h *Handler) listDishes(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	restaurantID, err := pathID(r, "restaurantID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dishes, err := h.service.ListDishesByRestaurant(ctx, restaurantID)
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusOK, dishes)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	dishID, err := pathID(r, "dishID")
	if err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteDish(ctx, dishID, requestID); err != nil {
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusOK, map[string]string{"message": "Dish deleted successfully."})
}

// pathID parses a UUID URL parameter
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid id: %w", name, models.ErrValidation)
	}
	return id, nil
}
