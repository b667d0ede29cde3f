package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"comanda/internal/database"
	"comanda/internal/models"
)

// Repository implements Store over PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new identity repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetRestaurantByName(ctx context.Context, name string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.QueryRow(ctx, database.GetRestaurantByNameSQL, name).Scan(
		&restaurant.ID, &restaurant.Name, &restaurant.Code, &restaurant.OwnerID, &restaurant.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("restaurant not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *Repository) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	err := r.db.QueryRow(ctx, database.InsertRestaurantSQL,
		restaurant.ID, restaurant.Name, restaurant.Code).Scan(&restaurant.CreatedAt)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("restaurant name is already taken: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (r *Repository) SetRestaurantOwner(ctx context.Context, restaurantID, userID uuid.UUID) error {
	err := r.db.Exec(ctx, database.SetRestaurantOwnerSQL, userID, restaurantID)
	if err != nil {
		return fmt.Errorf("failed to set restaurant owner: %w", err)
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, database.InsertUserSQL,
		user.ID, user.Username, user.Email, user.PasswordHash, user.RestaurantID).
		Scan(&user.CreatedAt)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("username or email is already taken: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, string, error) {
	var user models.User
	var restaurantName string
	err := r.db.QueryRow(ctx, database.GetUserByUsernameSQL, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.RestaurantID, &user.CreatedAt, &restaurantName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	return &user, restaurantName, nil
}
