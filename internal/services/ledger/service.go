package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"comanda/internal/logger"
	"comanda/internal/models"
)

// Service owns the table lifecycle: opening, dish attachment with total
// recomputation, closing and deletion. All invariant checks live here or
// in the store primitives it calls, never in presentation code.
type Service struct {
	store     Store
	publisher EventPublisher
	qr        QRGenerator
	logger    *logger.Logger
}

// NewService creates a new ledger service
func NewService(store Store, publisher EventPublisher, qr QRGenerator, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		qr:        qr,
		logger:    log,
	}
}

// OpenTable opens a new table for the user in the restaurant. The
// duplicate-open check is enforced by the store's partial unique index,
// so two concurrent opens with the same name cannot both succeed.
func (s *Service) OpenTable(ctx context.Context, req *models.OpenTableRequest, requestID string) (*models.Table, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, _ := uuid.Parse(req.UserID)
	restaurantID, _ := uuid.Parse(req.RestaurantID)

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.store.RestaurantExists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("restaurant not found: %w", models.ErrNotFound)
	}

	table := &models.Table{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		UserID:       userID,
		RestaurantID: restaurantID,
		Dishes:       []models.Dish{},
	}

	if err := s.store.CreateTable(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table_opened", fmt.Sprintf("Opened table %q", table.Name), requestID, map[string]interface{}{
		"table_id":      table.ID.String(),
		"restaurant_id": table.RestaurantID.String(),
	})
	s.publishEvent(ctx, models.EventTableOpened, table, requestID)

	return table, nil
}

// AttachDish appends a dish to an open table and returns the table with
// dish details resolved. The store serializes concurrent attachments to
// the same table, so the total always equals the sum over the sequence.
func (s *Service) AttachDish(ctx context.Context, tableID, dishID uuid.UUID, requestID string) (*models.Table, error) {
	if err := s.store.AttachDish(ctx, tableID, dishID); err != nil {
		return nil, err
	}

	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("dish_attached", "Added dish to table", requestID, map[string]interface{}{
		"table_id": tableID.String(),
		"dish_id":  dishID.String(),
		"total":    table.Total,
	})
	s.publishEvent(ctx, models.EventTableDishAdded, table, requestID)

	return table, nil
}

// CloseTable marks the table closed. Closing an already-closed table is
// a conflict, and a closed table accepts no further dish attachments.
func (s *Service) CloseTable(ctx context.Context, tableID uuid.UUID, requestID string) (*models.Table, error) {
	if err := s.store.CloseTable(ctx, tableID); err != nil {
		return nil, err
	}

	table, err := s.store.GetTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("table_closed", fmt.Sprintf("Closed table %q", table.Name), requestID, map[string]interface{}{
		"table_id": table.ID.String(),
		"total":    table.Total,
	})
	s.publishEvent(ctx, models.EventTableClosed, table, requestID)

	return table, nil
}

// DeleteTable removes the table outright. Referenced dishes, the creator
// and the restaurant are untouched.
func (s *Service) DeleteTable(ctx context.Context, tableID uuid.UUID, requestID string) error {
	if err := s.store.DeleteTable(ctx, tableID); err != nil {
		return err
	}

	s.logger.Info("table_deleted", "Deleted table", requestID, map[string]interface{}{
		"table_id": tableID.String(),
	})
	return nil
}

// ListOpenByUser returns the user's open tables with dishes resolved
func (s *Service) ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]models.Table, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListOpenByUser(ctx, userID)
}

// ListOpenByRestaurant returns all open tables in the user's restaurant
func (s *Service) ListOpenByRestaurant(ctx context.Context, userID uuid.UUID) ([]models.Table, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByRestaurant(ctx, user.RestaurantID, true)
}

// ListClosedByRestaurant returns all closed tables in the user's restaurant
func (s *Service) ListClosedByRestaurant(ctx context.Context, userID uuid.UUID) ([]models.Table, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListByRestaurant(ctx, user.RestaurantID, false)
}

// CheckQR renders a QR image pointing at the table's check
func (s *Service) CheckQR(ctx context.Context, tableID uuid.UUID) ([]byte, error) {
	if _, err := s.store.GetTable(ctx, tableID); err != nil {
		return nil, err
	}
	return s.qr.Generate(tableID)
}

// publishEvent publishes a lifecycle event to the topic and fanout
// exchanges. Publish failures are logged, never surfaced: the table
// state change has already committed.
func (s *Service) publishEvent(ctx context.Context, eventType string, table *models.Table, requestID string) {
	if s.publisher == nil {
		return
	}

	event := models.NewTableEvent(eventType, table)
	if err := s.publisher.PublishTableEvent(ctx, event, eventType); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish table event", requestID, err, map[string]interface{}{
			"event_type": eventType,
			"table_id":   table.ID.String(),
		})
		return
	}
	if err := s.publisher.PublishNotification(ctx, event); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish notification", requestID, err, map[string]interface{}{
			"event_type": eventType,
			"table_id":   table.ID.String(),
		})
	}
}
