package admin

import (
	"context"
	"errors"

	"contactagenda/internal/domain"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type Service struct {
	users  UserRepositoryInterface
	tokens RefreshTokenRevoker
}

func NewService(users UserRepositoryInterface, tokens RefreshTokenRevoker) *Service {
	return &Service{users: users, tokens: tokens}
}

// DeactivateUser soft-deactivates the account and revokes every refresh
// token it holds, so deactivation takes effect at the next token refresh.
func (s *Service) DeactivateUser(ctx context.Context, userID, ip string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Deactivate()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeAllForUser(ctx, user.ID, ip); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ActivateUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Activate()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
