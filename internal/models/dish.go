package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DishCategory represents the fixed menu section a dish belongs to
type DishCategory string

const (
	CategoryKitchen  DishCategory = "Kitchen"
	CategoryBeverage DishCategory = "Beverage"
	CategoryOther    DishCategory = "Other"
)

// Valid reports whether the category is one of the fixed enumeration
func (c DishCategory) Valid() bool {
	switch c {
	case CategoryKitchen, CategoryBeverage, CategoryOther:
		return true
	default:
		return false
	}
}

// Dish is a menu item with a fixed price, scoped to one restaurant.
type Dish struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	Image        string       `json:"image,omitempty"`
	Category     DishCategory `json:"category"`
	RestaurantID uuid.UUID    `json:"restaurant_id"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CreateDishRequest represents the request to add a dish to the catalog
type CreateDishRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	RestaurantID string  `json:"restaurantId"`
}

// Validate checks the create dish request fields
func (req *CreateDishRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("dish name is required: %w", ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if !DishCategory(req.Category).Valid() {
		return fmt.Errorf("category must be one of: Kitchen, Beverage, Other: %w", ErrValidation)
	}
	if _, err := uuid.Parse(req.RestaurantID); err != nil {
		return fmt.Errorf("restaurantId must be a valid id: %w", ErrValidation)
	}
	return nil
}
