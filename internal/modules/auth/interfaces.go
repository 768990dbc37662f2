package auth

import (
	"context"

	"contactagenda/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error)
	AddUserRole(ctx context.Context, ur *domain.UserRole) error
}

// RoleRepositoryInterface does role lookup for the default-role assignment.
type RoleRepositoryInterface interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

// RefreshTokenRepositoryInterface is storage for refresh tokens. Revoke is the
// conditional update that decides rotation races: it returns false when some
// other call already revoked the token.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id, revokedByIP string, replacedByToken *string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID, revokedByIP string) error
}

// PasswordHasher hashes and verifies passwords. Verify never returns an
// error: a malformed digest is just a failed verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type tokenIssuer interface {
	GenerateAccessToken(user *domain.User, roles []string) (string, error)
}
