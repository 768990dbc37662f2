package admin

import (
	"context"

	"contactagenda/internal/domain"
)

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type RefreshTokenRevoker interface {
	RevokeAllForUser(ctx context.Context, userID, revokedByIP string) error
}
