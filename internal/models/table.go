package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Table is an open or closed order tab. The dish sequence is ordered and
// may contain the same dish more than once; total always mirrors the
// sequence and is persisted alongside it, never derived at read time.
type Table struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	UserID       uuid.UUID  `json:"user_id"`
	Username     string     `json:"username,omitempty"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	IsOpen       bool       `json:"isOpen"`
	Dishes       []Dish     `json:"dishes"`
	Total        float64    `json:"total"`
	OpenedAt     time.Time  `json:"openedAt"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
}

// OpenTableRequest represents the request to open a new table
type OpenTableRequest struct {
	Name         string `json:"name"`
	UserID       string `json:"userId"`
	RestaurantID string `json:"restaurantId"`
}

// Validate checks the open table request fields
func (req *OpenTableRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("table name must not be empty: %w", ErrValidation)
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		return fmt.Errorf("userId must be a valid id: %w", ErrValidation)
	}
	if _, err := uuid.Parse(req.RestaurantID); err != nil {
		return fmt.Errorf("restaurantId must be a valid id: %w", ErrValidation)
	}
	return nil
}

// AttachDishRequest represents the request to add a dish to an open table
type AttachDishRequest struct {
	DishID string `json:"dishId"`
}

// Validate checks the attach dish request fields
func (req *AttachDishRequest) Validate() error {
	if _, err := uuid.Parse(req.DishID); err != nil {
		return fmt.Errorf("dishId must be a valid id: %w", ErrValidation)
	}
	return nil
}

// Table lifecycle event types published to the broker
const (
	EventTableOpened    = "table.opened"
	EventTableDishAdded = "table.dish_added"
	EventTableClosed    = "table.closed"
)

// TableEvent is the message published after a table lifecycle change commits
type TableEvent struct {
	EventType    string    `json:"event_type"`
	TableID      uuid.UUID `json:"table_id"`
	TableName    string    `json:"table_name"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	UserID       uuid.UUID `json:"user_id"`
	Total        float64   `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewTableEvent builds the event for the current state of a table
func NewTableEvent(eventType string, table *Table) *TableEvent {
	return &TableEvent{
		EventType:    eventType,
		TableID:      table.ID,
		TableName:    table.Name,
		RestaurantID: table.RestaurantID,
		UserID:       table.UserID,
		Total:        table.Total,
		Timestamp:    time.Now().UTC(),
	}
}
