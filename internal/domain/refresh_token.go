package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the long-lived session credential.
//
// Security notes:
// - The token value is opaque random data, unique, and immutable once created.
// - On refresh the token is rotated: the old one is revoked and ReplacedByToken
//   points at the value that superseded it.
// - RevokedAt is write-once. A token goes Active -> Revoked or Active ->
//   Expired and never back.
type RefreshToken struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	UserID string `json:"user_id" gorm:"type:uuid;index;not null"`

	Token       string    `json:"-" gorm:"size:128;uniqueIndex;not null"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByIP string    `json:"created_by_ip"`

	RevokedAt       *time.Time `json:"revoked_at,omitempty" gorm:"index"`
	RevokedByIP     *string    `json:"revoked_by_ip,omitempty"`
	ReplacedByToken *string    `json:"replaced_by_token,omitempty"`
}

func NewRefreshToken(userID, token string, expiresAt time.Time, createdByIP string) (*RefreshToken, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "user id cannot be empty"}
	}
	if token == "" {
		return nil, &ValidationError{Field: "token", Message: "token cannot be empty"}
	}
	if !expiresAt.After(time.Now().UTC()) {
		return nil, &ValidationError{Field: "expires_at", Message: "expiration date must be in the future"}
	}
	return &RefreshToken{
		ID:          uuid.NewString(),
		UserID:      userID,
		Token:       token,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
		CreatedByIP: createdByIP,
	}, nil
}

// IsExpired treats expiresAt exactly equal to now as expired.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}
