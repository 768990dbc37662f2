package auth

import (
	"context"
	"errors"
	"regexp"
	"time"

	"contactagenda/internal/domain"
	"contactagenda/internal/pkg/jwt"

	"gorm.io/gorm"
)

var (
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[@$!%*?&#]`)
)

// Service contains the Register / Login / Refresh / Logout orchestration.
type Service struct {
	users      UserRepositoryInterface
	roles      RoleRepositoryInterface
	tokens     RefreshTokenRepositoryInterface
	jwt        tokenIssuer
	hasher     PasswordHasher
	refreshTTL time.Duration
}

// Result is what a successful use case hands back to the HTTP layer.
type Result struct {
	User         *domain.User
	Roles        []string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

func NewService(
	users UserRepositoryInterface,
	roles RoleRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	issuer tokenIssuer,
	hasher PasswordHasher,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		roles:      roles,
		tokens:     tokens,
		jwt:        issuer,
		hasher:     hasher,
		refreshTTL: refreshTTL,
	}
}

// Register creates a user, grants the default User role, and opens the first
// session. The existence checks are advisory; the store's unique indexes are
// the final arbiter when two registrations race on the same name.
func (s *Service) Register(ctx context.Context, req RegisterRequest, ip string) (*Result, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if exists, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateUsername
	}
	if exists, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateEmail
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(req.Username, req.Email, passwordHash, req.FullName)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(ctx, user.Username)
		}
		return nil, err
	}

	defaultRole, err := s.roles.GetByName(ctx, domain.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingDefaultRole
		}
		return nil, err
	}

	userRole, err := domain.NewUserRole(user.ID, defaultRole.ID)
	if err != nil {
		return nil, err
	}
	if err := s.users.AddUserRole(ctx, userRole); err != nil {
		return nil, err
	}

	return s.openSession(ctx, user, []string{defaultRole.Name}, ip)
}

// Login authenticates by username and password. A missing user and a wrong
// password collapse into the same error so usernames cannot be enumerated.
func (s *Service) Login(ctx context.Context, req LoginRequest, ip string) (*Result, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	roleNames, err := s.roleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, user, roleNames, ip)
}

// Refresh redeems a refresh token for a new access/refresh pair. The token
// state machine:
//
//	unknown value      -> ErrInvalidRefreshToken
//	already revoked    -> ErrRevokedRefreshToken
//	past expiry        -> ErrExpiredRefreshToken
//	active             -> revoke, chain to a new token, issue new pair
//
// The conditional revoke in the repository is the single point where the
// token stops being redeemable. Two concurrent redemptions both reach it;
// exactly one wins, the other observes revoked=false and fails the same way
// a late replay would.
func (s *Service) Refresh(ctx context.Context, refreshToken, ip string) (*Result, error) {
	token, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if token.IsRevoked() {
		return nil, ErrRevokedRefreshToken
	}
	if token.IsExpired(time.Now().UTC()) {
		return nil, ErrExpiredRefreshToken
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	newValue, err := jwt.NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokens.Revoke(ctx, token.ID, ip, &newValue)
	if err != nil {
		return nil, err
	}
	if !revoked {
		return nil, ErrRevokedRefreshToken
	}

	newToken, err := domain.NewRefreshToken(user.ID, newValue, time.Now().UTC().Add(s.refreshTTL), ip)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, newToken); err != nil {
		return nil, err
	}

	roleNames, err := s.roleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.GenerateAccessToken(user, roleNames)
	if err != nil {
		return nil, err
	}

	return &Result{
		User:         user,
		Roles:        roleNames,
		AccessToken:  accessToken,
		RefreshToken: newToken.Token,
		ExpiresAt:    newToken.ExpiresAt,
	}, nil
}

// Logout revokes the presented refresh token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken, ip string) error {
	token, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	_, err = s.tokens.Revoke(ctx, token.ID, ip, nil)
	return err
}

// openSession issues a brand-new access/refresh pair and persists the
// refresh token.
func (s *Service) openSession(ctx context.Context, user *domain.User, roleNames []string, ip string) (*Result, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user, roleNames)
	if err != nil {
		return nil, err
	}

	value, err := jwt.NewRefreshTokenValue()
	if err != nil {
		return nil, err
	}

	refreshToken, err := domain.NewRefreshToken(user.ID, value, time.Now().UTC().Add(s.refreshTTL), ip)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Create(ctx, refreshToken); err != nil {
		return nil, err
	}

	return &Result{
		User:         user,
		Roles:        roleNames,
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresAt:    refreshToken.ExpiresAt,
	}, nil
}

func (s *Service) roleNames(ctx context.Context, userID string) ([]string, error) {
	roles, err := s.users.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names, nil
}

// classifyDuplicate decides which unique index a racing insert hit.
func (s *Service) classifyDuplicate(ctx context.Context, username string) error {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err == nil && exists {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

func validatePassword(password string) error {
	switch {
	case len(password) < 8:
		return &domain.ValidationError{Field: "password", Message: "password must be at least 8 characters long"}
	case !upperRegex.MatchString(password):
		return &domain.ValidationError{Field: "password", Message: "password must contain at least one uppercase letter"}
	case !lowerRegex.MatchString(password):
		return &domain.ValidationError{Field: "password", Message: "password must contain at least one lowercase letter"}
	case !digitRegex.MatchString(password):
		return &domain.ValidationError{Field: "password", Message: "password must contain at least one number"}
	case !specialRegex.MatchString(password):
		return &domain.ValidationError{Field: "password", Message: "password must contain at least one special character (@$!%*?&#)"}
	}
	return nil
}
