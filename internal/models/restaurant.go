package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a tenant boundary: every user, dish and table belongs to
// exactly one restaurant. The join code is the shared secret new users
// present at registration; it never changes once set.
type Restaurant struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"-"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
