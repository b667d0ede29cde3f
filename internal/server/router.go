package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"comanda/internal/logger"
)

// Registrar is implemented by service handlers that mount their routes
type Registrar interface {
	RegisterRoutes(r chi.Router)
}

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrokerStatus reports whether the message broker connection is up
type BrokerStatus interface {
	IsClosed() bool
}

// NewRouter assembles the REST surface: CORS for the browser frontend,
// panic recovery, request logging, the health endpoint and every
// service handler's routes.
func NewRouter(log *logger.Logger, allowedOrigin string, db Pinger, broker BrokerStatus, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))

	r.Get("/health", healthHandler(db, broker))

	for _, h := range handlers {
		h.RegisterRoutes(r)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(r)
}

// healthHandler reports database and broker health
func healthHandler(db Pinger, broker BrokerStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := true
		if err := db.Ping(ctx); err != nil {
			healthy = false
		}
		if broker.IsClosed() {
			healthy = false
		}

		response := map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "comanda",
			"healthy":   healthy,
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
		}

		WriteJSON(w, status, response)
	}
}
