package identity

import (
	"context"

	"github.com/google/uuid"

	"comanda/internal/models"
)

// Store is the persistence boundary for registration and login
type Store interface {
	GetRestaurantByName(ctx context.Context, name string) (*models.Restaurant, error)

	// CreateRestaurant persists a new restaurant. Returns a conflict
	// error when the name is already taken.
	CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error

	// SetRestaurantOwner assigns the owner only if none is set yet.
	SetRestaurantOwner(ctx context.Context, restaurantID, userID uuid.UUID) error

	// CreateUser persists a new user. Returns a conflict error when the
	// username or email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns the user and their restaurant's name.
	GetUserByUsername(ctx context.Context, username string) (*models.User, string, error)
}

// TokenIssuer signs session tokens for logged-in users
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string, restaurantID uuid.UUID) (string, error)
}
