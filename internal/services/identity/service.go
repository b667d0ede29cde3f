package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"comanda/internal/logger"
	"comanda/internal/models"
)

const bcryptCost = 10

// Service handles registration and login
type Service struct {
	store  Store
	tokens TokenIssuer
	logger *logger.Logger
}

// NewService creates a new identity service
func NewService(store Store, tokens TokenIssuer, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: log,
	}
}

// Register creates a user under a restaurant. When the restaurant name is
// already taken, the presented join code must match; otherwise a new
// restaurant is created and the first registrant becomes its owner.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest, requestID string) (*models.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	restaurant, err := s.resolveRestaurant(ctx, strings.TrimSpace(req.RestaurantName), req.RestaurantCode)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		RestaurantID: restaurant.ID,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if restaurant.OwnerID == nil {
		if err := s.store.SetRestaurantOwner(ctx, restaurant.ID, user.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("user_registered", fmt.Sprintf("Registered user %q", user.Username), requestID, map[string]interface{}{
		"user_id":       user.ID.String(),
		"restaurant_id": restaurant.ID.String(),
	})

	return &models.RegisterResponse{
		Message:      "User registered successfully.",
		UserID:       user.ID,
		RestaurantID: restaurant.ID,
	}, nil
}

// resolveRestaurant finds the restaurant by name and checks the join code,
// or creates it when absent. A lost race against a concurrent creator is
// retried as a join attempt.
func (s *Service) resolveRestaurant(ctx context.Context, name, code string) (*models.Restaurant, error) {
	restaurant, err := s.store.GetRestaurantByName(ctx, name)
	if err == nil {
		if restaurant.Code != code {
			return nil, fmt.Errorf("restaurant already exists and the join code is incorrect: %w", models.ErrConflict)
		}
		return restaurant, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	restaurant = &models.Restaurant{
		ID:   uuid.New(),
		Name: name,
		Code: code,
	}
	createErr := s.store.CreateRestaurant(ctx, restaurant)
	if createErr == nil {
		return restaurant, nil
	}
	if !errors.Is(createErr, models.ErrConflict) {
		return nil, createErr
	}

	// Someone created the restaurant in between; join it instead
	restaurant, err = s.store.GetRestaurantByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if restaurant.Code != code {
		return nil, fmt.Errorf("restaurant already exists and the join code is incorrect: %w", models.ErrConflict)
	}
	return restaurant, nil
}

// Login verifies the credentials and returns session info with a signed
// token. Every failure mode is unauthorized; the reason is not leaked
// beyond the message.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest, requestID string) (*models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, restaurantName, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", models.ErrUnauthorized)
		}
		return nil, err
	}

	if restaurantName != strings.TrimSpace(req.RestaurantName) {
		return nil, fmt.Errorf("incorrect restaurant name: %w", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("incorrect password: %w", models.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("user_logged_in", fmt.Sprintf("User %q logged in", user.Username), requestID, map[string]interface{}{
		"user_id": user.ID.String(),
	})

	return &models.LoginResponse{
		Message:        "Login successful",
		UserID:         user.ID,
		Username:       user.Username,
		RestaurantID:   user.RestaurantID,
		RestaurantName: restaurantName,
		Token:          token,
	}, nil
}
