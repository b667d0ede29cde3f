package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	userID := uuid.New()
	restaurantID := uuid.New()

	token, err := issuer.Issue(userID, "maria", restaurantID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.Subject != userID.String() {
		t.Errorf("subject = %q, want %q", claims.Subject, userID)
	}
	if claims.Username != "maria" {
		t.Errorf("username = %q, want maria", claims.Username)
	}
	if claims.RestaurantID != restaurantID.String() {
		t.Errorf("restaurant_id = %q, want %q", claims.RestaurantID, restaurantID)
	}
}

func TestIssuer_Validate_Errors(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	if _, err := issuer.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token: got %v, want ErrMissingToken", err)
	}

	if _, err := issuer.Validate("garbage.token.here"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: got %v, want ErrInvalidToken", err)
	}

	// Token signed with a different secret must not validate
	other := NewIssuer("other-secret", time.Hour)
	token, err := other.Issue(uuid.New(), "maria", uuid.New())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := issuer.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestIssuer_Validate_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(uuid.New(), "maria", uuid.New())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer.now = time.Now
	if _, err := issuer.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: got %v, want ErrInvalidToken", err)
	}
}
