package catalog

import (
	"context"

	"github.com/google/uuid"

	"comanda/internal/models"
)

// Store is the persistence boundary for the dish catalog
type Store interface {
	RestaurantExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateDish(ctx context.Context, dish *models.Dish) error
	ListDishesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error)

	// DeleteDish removes the dish. Returns a conflict error when the
	// dish is still referenced by a table's check.
	DeleteDish(ctx context.Context, id uuid.UUID) error
}
