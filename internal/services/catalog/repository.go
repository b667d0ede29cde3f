package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"comanda/internal/database"
	"comanda/internal/models"
)

// Repository implements Store over PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) RestaurantExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, database.RestaurantExistsSQL, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check restaurant: %w", err)
	}
	return exists, nil
}

func (r *Repository) CreateDish(ctx context.Context, dish *models.Dish) error {
	err := r.db.QueryRow(ctx, database.InsertDishSQL,
		dish.ID, dish.Name, dish.Price, dish.Image, string(dish.Category), dish.RestaurantID).
		Scan(&dish.CreatedAt)
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("restaurant not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to insert dish: %w", err)
	}
	return nil
}

func (r *Repository) ListDishesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error) {
	rows, err := r.db.Query(ctx, database.ListDishesByRestaurantSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	dishes := []models.Dish{}
	for rows.Next() {
		var dish models.Dish
		var category string
		err := rows.Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Image,
			&category, &dish.RestaurantID, &dish.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish: %w", err)
		}
		dish.Category = models.DishCategory(category)
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

func (r *Repository) DeleteDish(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, database.DeleteDishSQL, id)
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("dish is still on a table's check: %w", models.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dish not found: %w", models.ErrNotFound)
	}
	return nil
}
