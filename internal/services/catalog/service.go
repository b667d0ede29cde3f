package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"comanda/internal/logger"
	"comanda/internal/models"
)

// Service manages the dish catalog. Dishes are reference data for the
// ledger: immutable once created, scoped to one restaurant.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new catalog service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// CreateDish adds a dish to a restaurant's menu
func (s *Service) CreateDish(ctx context.Context, req *models.CreateDishRequest, requestID string) (*models.Dish, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	restaurantID, _ := uuid.Parse(req.RestaurantID)

	exists, err := s.store.RestaurantExists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("restaurant not found: %w", models.ErrNotFound)
	}

	dish := &models.Dish{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		Image:        req.Image,
		Category:     models.DishCategory(req.Category),
		RestaurantID: restaurantID,
	}
	if err := s.store.CreateDish(ctx, dish); err != nil {
		return nil, err
	}

	s.logger.Info("dish_created", fmt.Sprintf("Created dish %q", dish.Name), requestID, map[string]interface{}{
		"dish_id":       dish.ID.String(),
		"restaurant_id": restaurantID.String(),
		"price":         dish.Price,
	})

	return dish, nil
}

// ListDishesByRestaurant returns a restaurant's menu; empty is valid
func (s *Service) ListDishesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error) {
	return s.store.ListDishesByRestaurant(ctx, restaurantID)
}

// DeleteDish removes a dish from the catalog
func (s *Service) DeleteDish(ctx context.Context, dishID uuid.UUID, requestID string) error {
	if err := s.store.DeleteDish(ctx, dishID); err != nil {
		return err
	}

	s.logger.Info("dish_deleted", "Deleted dish", requestID, map[string]interface{}{
		"dish_id": dishID.String(),
	})
	return nil
}
