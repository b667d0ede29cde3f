package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is created at registration and never mutated afterwards.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest represents the request to register a new user, joining
// an existing restaurant by code or creating a new one.
type RegisterRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurantName"`
	RestaurantCode string `json:"restaurantCode"`
}

// Validate checks the register request fields
func (req *RegisterRequest) Validate() error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("username is required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("a valid email is required: %w", ErrValidation)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}
	if strings.TrimSpace(req.RestaurantName) == "" {
		return fmt.Errorf("restaurantName is required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.RestaurantCode) == "" {
		return fmt.Errorf("restaurantCode is required: %w", ErrValidation)
	}
	return nil
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	Message      string    `json:"message"`
	UserID       uuid.UUID `json:"userId"`
	RestaurantID uuid.UUID `json:"restaurantId"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	RestaurantName string `json:"restaurantName"`
}

// Validate checks the login request fields
func (req *LoginRequest) Validate() error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("username is required: %w", ErrValidation)
	}
	if req.Password == "" {
		return fmt.Errorf("password is required: %w", ErrValidation)
	}
	if strings.TrimSpace(req.RestaurantName) == "" {
		return fmt.Errorf("restaurantName is required: %w", ErrValidation)
	}
	return nil
}

// LoginResponse carries the session info for a logged-in user
type LoginResponse struct {
	Message        string    `json:"message"`
	UserID         uuid.UUID `json:"userId"`
	Username       string    `json:"username"`
	RestaurantID   uuid.UUID `json:"restaurantId"`
	RestaurantName string    `json:"restaurantName"`
	Token          string    `json:"token"`
}
