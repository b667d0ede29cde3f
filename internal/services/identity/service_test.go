package identity

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comanda/internal/auth"
	"comanda/internal/logger"
	"comanda/internal/models"
)

// memStore is an in-memory Store with the same uniqueness rules as the
// PostgreSQL repository.
type memStore struct {
	mu          sync.Mutex
	restaurants map[string]*models.Restaurant
	users       map[string]*models.User
}

func newMemStore() *memStore {
	return &memStore{
		restaurants: map[string]*models.Restaurant{},
		users:       map[string]*models.User{},
	}
}

func (m *memStore) GetRestaurantByName(ctx context.Context, name string) (*models.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	restaurant, ok := m.restaurants[name]
	if !ok {
		return nil, fmt.Errorf("restaurant not found: %w", models.ErrNotFound)
	}
	copied := *restaurant
	return &copied, nil
}

func (m *memStore) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.restaurants[restaurant.Name]; ok {
		return fmt.Errorf("restaurant name is already taken: %w", models.ErrConflict)
	}
	stored := *restaurant
	m.restaurants[restaurant.Name] = &stored
	return nil
}

func (m *memStore) SetRestaurantOwner(ctx context.Context, restaurantID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, restaurant := range m.restaurants {
		if restaurant.ID == restaurantID && restaurant.OwnerID == nil {
			owner := userID
			restaurant.OwnerID = &owner
		}
	}
	return nil
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("username or email is already taken: %w", models.ErrConflict)
		}
	}
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, "", fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	copied := *user
	for name, restaurant := range m.restaurants {
		if restaurant.ID == user.RestaurantID {
			return &copied, name, nil
		}
	}
	return &copied, "", nil
}

func newTestService(store Store) *Service {
	return NewService(store, auth.NewIssuer("test-secret", time.Hour), logger.New("test"))
}

func registerRequest(username string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:       username,
		Email:          username + "@test.dev",
		Password:       "hunter22",
		RestaurantName: "La Comanda",
		RestaurantCode: "4242",
	}
}

func TestRegister_CreatesRestaurantAndOwner(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	service := newTestService(store)

	resp, err := service.Register(ctx, registerRequest("ana"), "req-1")
	require.NoError(t, err)

	assert.Equal(t, "User registered successfully.", resp.Message)
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEqual(t, uuid.Nil, resp.RestaurantID)

	restaurant, err := store.GetRestaurantByName(ctx, "La Comanda")
	require.NoError(t, err)
	require.NotNil(t, restaurant.OwnerID)
	assert.Equal(t, resp.UserID, *restaurant.OwnerID)
}

func TestRegister_JoinsExistingRestaurant(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	service := newTestService(store)

	first, err := service.Register(ctx, registerRequest("ana"), "req-1")
	require.NoError(t, err)

	second, err := service.Register(ctx, registerRequest("bob"), "req-2")
	require.NoError(t, err)

	// Both users end up in the same restaurant; the owner stays the first
	assert.Equal(t, first.RestaurantID, second.RestaurantID)
	restaurant, err := store.GetRestaurantByName(ctx, "La Comanda")
	require.NoError(t, err)
	require.NotNil(t, restaurant.OwnerID)
	assert.Equal(t, first.UserID, *restaurant.OwnerID)
}

func TestRegister_Errors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	service := newTestService(store)

	_, err := service.Register(ctx, registerRequest("ana"), "req-1")
	require.NoError(t, err)

	t.Run("wrong join code conflicts", func(t *testing.T) {
		req := registerRequest("bob")
		req.RestaurantCode = "9999"
		_, err := service.Register(ctx, req, "req-2")
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		req := registerRequest("ana")
		req.Email = "other@test.dev"
		_, err := service.Register(ctx, req, "req-3")
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		req := registerRequest("carla")
		req.Email = "ana@test.dev"
		_, err := service.Register(ctx, req, "req-4")
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("short password is a validation error", func(t *testing.T) {
		req := registerRequest("dina")
		req.Password = "abc"
		_, err := service.Register(ctx, req, "req-5")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("malformed email is a validation error", func(t *testing.T) {
		req := registerRequest("elsa")
		req.Email = "not-an-email"
		_, err := service.Register(ctx, req, "req-6")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	service := newTestService(store)

	_, err := service.Register(ctx, registerRequest("ana"), "req-1")
	require.NoError(t, err)

	login := func(username, password, restaurantName string) (*models.LoginResponse, error) {
		return service.Login(ctx, &models.LoginRequest{
			Username:       username,
			Password:       password,
			RestaurantName: restaurantName,
		}, "req-login")
	}

	t.Run("success returns session info and a token", func(t *testing.T) {
		resp, err := login("ana", "hunter22", "La Comanda")
		require.NoError(t, err)
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, "ana", resp.Username)
		assert.Equal(t, "La Comanda", resp.RestaurantName)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		_, err := login("ghost", "hunter22", "La Comanda")
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := login("ana", "wrong-pass", "La Comanda")
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("wrong restaurant name is unauthorized", func(t *testing.T) {
		_, err := login("ana", "hunter22", "Elsewhere")
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		_, err := login("", "hunter22", "La Comanda")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}
