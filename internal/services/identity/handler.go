package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"comanda/internal/logger"
	"comanda/internal/models"
	"comanda/internal/server"
)

// Handler handles HTTP requests for registration and login
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new identity handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// RegisterRoutes mounts the identity routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/users/register", h.register)
	r.Post("/api/users/login", h.login)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	var req models.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		server.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.service.Register(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("registration_failed", "Failed to register user", requestID, err, map[string]interface{}{
			"username":        req.Username,
			"restaurant_name": req.RestaurantName,
		})
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	requestID := server.RequestIDFrom(r.Context())

	var req models.LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		server.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	resp, err := h.service.Login(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("login_failed", "Failed login attempt", requestID, err, map[string]interface{}{
			"username": req.Username,
		})
		server.WriteDomainError(w, err, requestID)
		return
	}

	server.WriteJSON(w, http.StatusOK, resp)
}
