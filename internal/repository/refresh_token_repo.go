package repository

import (
	"context"
	"time"

	"contactagenda/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks a token revoked only if it is still unrevoked, and reports
// whether this call performed the transition. Concurrent redemptions of the
// same token race on this one conditional update: the caller that gets
// revoked=false lost and must treat the token as already spent.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id, revokedByIP string, replacedByToken *string) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"revoked_at":    now,
		"revoked_by_ip": revokedByIP,
	}
	if replacedByToken != nil {
		updates["replaced_by_token"] = *replacedByToken
	}
	tx := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// RevokeAllForUser revokes every active token a user holds. Used when an
// account is deactivated.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID, revokedByIP string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Updates(map[string]any{
			"revoked_at":    now,
			"revoked_by_ip": revokedByIP,
		}).Error
}

// DeleteExpired purges tokens past their expiry and revoked tokens older
// than the retention window.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, revokedRetention time.Duration) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Or("revoked_at IS NOT NULL AND revoked_at < ?", now.Add(-revokedRetention)).
		Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}
