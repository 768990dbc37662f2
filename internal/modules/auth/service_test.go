package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"contactagenda/internal/domain"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetUserRoles(ctx context.Context, userID string) ([]domain.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *mockUserRepo) AddUserRole(ctx context.Context, ur *domain.UserRole) error {
	args := m.Called(ctx, ur)
	return args.Error(0)
}

// Mock Role Repository
type mockRoleRepo struct {
	mock.Mock
}

func (m *mockRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

// Mock Refresh Token Repository
type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTokenRepo) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockTokenRepo) Revoke(ctx context.Context, id, revokedByIP string, replacedByToken *string) (bool, error) {
	args := m.Called(ctx, id, revokedByIP, replacedByToken)
	return args.Bool(0), args.Error(1)
}

func (m *mockTokenRepo) RevokeAllForUser(ctx context.Context, userID, revokedByIP string) error {
	args := m.Called(ctx, userID, revokedByIP)
	return args.Error(0)
}

// Mock token issuer
type mockIssuer struct {
	mock.Mock
}

func (m *mockIssuer) GenerateAccessToken(user *domain.User, roles []string) (string, error) {
	args := m.Called(user, roles)
	return args.String(0), args.Error(1)
}

func newTestService(users *mockUserRepo, roles *mockRoleRepo, tokens *mockTokenRepo, issuer *mockIssuer) *Service {
	return NewService(users, roles, tokens, issuer, NewBcryptHasher(), 7*24*time.Hour)
}

func userRoleFixture() *domain.Role {
	return &domain.Role{ID: uuid.NewString(), Name: domain.RoleUser, CreatedAt: time.Now().UTC()}
}

func activeUserFixture(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := NewBcryptHasher().Hash(password)
	require.NoError(t, err)
	user, err := domain.NewUser("alice", "alice@x.com", hash, "Alice A")
	require.NoError(t, err)
	return user
}

func activeTokenFixture(userID string) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     "old-refresh-value",
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
}

func TestService_Register_Success(t *testing.T) {
	users := new(mockUserRepo)
	roles := new(mockRoleRepo)
	tokens := new(mockTokenRepo)
	issuer := new(mockIssuer)

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	roles.On("GetByName", mock.Anything, domain.RoleUser).Return(userRoleFixture(), nil)
	users.On("AddUserRole", mock.Anything, mock.Anything).Return(nil)
	issuer.On("GenerateAccessToken", mock.Anything, []string{domain.RoleUser}).Return("access-token", nil)
	tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(users, roles, tokens, issuer)

	result, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "Secret@123",
		FullName: "Alice A",
	}, "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, []string{domain.RoleUser}, result.Roles)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), result.ExpiresAt, time.Minute)

	users.AssertExpectations(t)
	roles.AssertExpectations(t)
	tokens.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	service := newTestService(users, new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "Secret@123", FullName: "Alice A",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, ErrDuplicateUsername)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(true, nil)

	service := newTestService(users, new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "Secret@123", FullName: "Alice A",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_RacingInsertHitsUniqueIndex(t *testing.T) {
	users := new(mockUserRepo)
	// advisory checks pass, then the insert loses the race
	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil).Once()
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil).Once()

	service := newTestService(users, new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "Secret@123", FullName: "Alice A",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestService_Register_WeakPassword(t *testing.T) {
	service := newTestService(new(mockUserRepo), new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	for _, password := range []string{"Ab@1", "nouppercase@123", "NOLOWERCASE@123", "NoDigits@abc", "NoSpecial123A"} {
		_, err := service.Register(context.Background(), RegisterRequest{
			Username: "alice", Email: "alice@x.com", Password: password, FullName: "Alice A",
		}, "10.0.0.1")
		assert.True(t, domain.IsValidation(err), password)
	}
}

func TestService_Register_MissingDefaultRole(t *testing.T) {
	users := new(mockUserRepo)
	roles := new(mockRoleRepo)

	users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	users.On("ExistsByEmail", mock.Anything, "alice@x.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	roles.On("GetByName", mock.Anything, domain.RoleUser).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, roles, new(mockTokenRepo), new(mockIssuer))

	_, err := service.Register(context.Background(), RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "Secret@123", FullName: "Alice A",
	}, "10.0.0.1")

	assert.ErrorIs(t, err, ErrMissingDefaultRole)
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)
	issuer := new(mockIssuer)

	user := activeUserFixture(t, "Secret@123")
	users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	users.On("GetUserRoles", mock.Anything, user.ID).Return([]domain.Role{{Name: domain.RoleUser}}, nil)
	issuer.On("GenerateAccessToken", user, []string{domain.RoleUser}).Return("login-token", nil)
	tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(users, new(mockRoleRepo), tokens, issuer)

	result, err := service.Login(context.Background(), LoginRequest{
		Username: "alice", Password: "Secret@123",
	}, "10.0.0.2")

	require.NoError(t, err)
	assert.Equal(t, "login-token", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	tokens.AssertExpectations(t)
}

func TestService_Login_UnknownUserCollapsesToInvalidCredentials(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"}, "10.0.0.2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	user := activeUserFixture(t, "Secret@123")
	users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	service := newTestService(users, new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "Wrong@123"}, "10.0.0.2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_InactiveAccount(t *testing.T) {
	users := new(mockUserRepo)
	user := activeUserFixture(t, "Secret@123")
	user.Deactivate()
	users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

	service := newTestService(users, new(mockRoleRepo), new(mockTokenRepo), new(mockIssuer))

	_, err := service.Login(context.Background(), LoginRequest{Username: "alice", Password: "Secret@123"}, "10.0.0.2")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestService_Refresh_UnknownToken(t *testing.T) {
	tokens := new(mockTokenRepo)
	tokens.On("GetByToken", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(new(mockUserRepo), new(mockRoleRepo), tokens, new(mockIssuer))

	_, err := service.Refresh(context.Background(), "nope", "10.0.0.3")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_RevokedToken(t *testing.T) {
	tokens := new(mockTokenRepo)
	token := activeTokenFixture(uuid.NewString())
	revokedAt := time.Now().UTC()
	token.RevokedAt = &revokedAt
	tokens.On("GetByToken", mock.Anything, token.Token).Return(token, nil)

	service := newTestService(new(mockUserRepo), new(mockRoleRepo), tokens, new(mockIssuer))

	_, err := service.Refresh(context.Background(), token.Token, "10.0.0.3")
	assert.ErrorIs(t, err, ErrRevokedRefreshToken)
	tokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Refresh_ExpiredToken(t *testing.T) {
	tokens := new(mockTokenRepo)
	token := activeTokenFixture(uuid.NewString())
	token.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	tokens.On("GetByToken", mock.Anything, token.Token).Return(token, nil)

	service := newTestService(new(mockUserRepo), new(mockRoleRepo), tokens, new(mockIssuer))

	_, err := service.Refresh(context.Background(), token.Token, "10.0.0.3")
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Refresh_InactiveUser(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	user := activeUserFixture(t, "Secret@123")
	user.Deactivate()
	token := activeTokenFixture(user.ID)

	tokens.On("GetByToken", mock.Anything, token.Token).Return(token, nil)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	service := newTestService(users, new(mockRoleRepo), tokens, new(mockIssuer))

	_, err := service.Refresh(context.Background(), token.Token, "10.0.0.3")
	assert.ErrorIs(t, err, ErrAccountInactive)
	tokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Refresh_RotatesToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)
	issuer := new(mockIssuer)

	user := activeUserFixture(t, "Secret@123")
	token := activeTokenFixture(user.ID)

	var chainedValue string
	tokens.On("GetByToken", mock.Anything, token.Token).Return(token, nil)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	tokens.On("Revoke", mock.Anything, token.ID, "10.0.0.3", mock.Anything).
		Run(func(args mock.Arguments) {
			chainedValue = *args.Get(3).(*string)
		}).
		Return(true, nil)
	tokens.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("GetUserRoles", mock.Anything, user.ID).Return([]domain.Role{{Name: domain.RoleUser}}, nil)
	issuer.On("GenerateAccessToken", user, []string{domain.RoleUser}).Return("new-access", nil)

	service := newTestService(users, new(mockRoleRepo), tokens, issuer)

	result, err := service.Refresh(context.Background(), token.Token, "10.0.0.3")

	require.NoError(t, err)
	assert.NotEqual(t, token.Token, result.RefreshToken)
	// the revoked record chains to the token that replaced it
	assert.Equal(t, result.RefreshToken, chainedValue)
	assert.Equal(t, "new-access", result.AccessToken)
	tokens.AssertExpectations(t)
}

func TestService_Refresh_RaceLoserSeesRevoked(t *testing.T) {
	users := new(mockUserRepo)
	tokens := new(mockTokenRepo)

	user := activeUserFixture(t, "Secret@123")
	token := activeTokenFixture(user.ID)

	tokens.On("GetByToken", mock.Anything, token.Token).Return(token, nil)
	users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	// someone else revoked between our read and our conditional update
	tokens.On("Revoke", mock.Anything, token.ID, "10.0.0.3", mock.Anything).Return(false, nil)

	service := newTestService(users, new(mockRoleRepo), tokens, new(mockIssuer))

	_, err := service.Refresh(context.Background(), token.Token, "10.0.0.3")

	assert.ErrorIs(t, err, ErrRevokedRefreshToken)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Logout(t *testing.T) {
	tokens := new(mockTokenRepo)
	token := activeTokenFixture(uuid.NewString())

	tokens.On("GetByToken", mock.Anything, token.Token).Return(token, nil)
	tokens.On("Revoke", mock.Anything, token.ID, "10.0.0.4", (*string)(nil)).Return(true, nil)

	service := newTestService(new(mockUserRepo), new(mockRoleRepo), tokens, new(mockIssuer))

	require.NoError(t, service.Logout(context.Background(), token.Token, "10.0.0.4"))
	tokens.AssertExpectations(t)
}

func TestService_Logout_UnknownTokenIsNoop(t *testing.T) {
	tokens := new(mockTokenRepo)
	tokens.On("GetByToken", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(new(mockUserRepo), new(mockRoleRepo), tokens, new(mockIssuer))

	assert.NoError(t, service.Logout(context.Background(), "ghost", "10.0.0.4"))
	tokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
