package ledger

import (
	"context"

	"github.com/google/uuid"

	"comanda/internal/models"
)

// Store is the persistence boundary for the table ledger
type Store interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	RestaurantExists(ctx context.Context, id uuid.UUID) (bool, error)

	// CreateTable persists a new open table with an empty dish sequence.
	// Returns a conflict error when an open table with the same name
	// already exists in the restaurant.
	CreateTable(ctx context.Context, table *models.Table) error

	// GetTable returns the table with its dish sequence resolved.
	GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error)

	// AttachDish appends the dish to the table's sequence and recomputes
	// the total, as a single atomic read-modify-write.
	AttachDish(ctx context.Context, tableID, dishID uuid.UUID) error

	// CloseTable marks an open table closed. Returns a conflict error
	// when the table exists but is already closed.
	CloseTable(ctx context.Context, id uuid.UUID) error

	DeleteTable(ctx context.Context, id uuid.UUID) error

	ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]models.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, open bool) ([]models.Table, error)
}

// EventPublisher publishes table lifecycle events after a successful commit
type EventPublisher interface {
	PublishTableEvent(ctx context.Context, event interface{}, routingKey string) error
	PublishNotification(ctx context.Context, event interface{}) error
}

// QRGenerator renders the check QR image for a table
type QRGenerator interface {
	Generate(tableID uuid.UUID) ([]byte, error)
}
