package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog/internal/auth"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, zap.NewNop())

	user := &models.User{Email: " Test@Example.com ", FullName: "Test User", Password: "Abc123"}

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	require.NoError(t, authService.RegisterUser(ctx, user))
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{auth.RoleUser}, []string(user.Roles))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Abc123")))
	mockRepo.AssertExpectations(t)

	// email already registered
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err := authService.RegisterUser(ctx, &models.User{Email: "test@example.com", Password: "Abc123"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateUser)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, zap.NewNop())

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Abc123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: "user-123", Email: "test@example.com", Password: string(hashedPassword), IsActive: true}

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser(ctx, "test@example.com", "Abc123")
	require.NoError(t, err)
	assert.Equal(t, "user-123", loggedIn.ID)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	// wrong password
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()
	_, _, err = authService.LoginUser(ctx, "test@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// unknown email gets the same answer
	mockRepo.On("GetByEmail", ctx, "nobody@example.com").
		Return(nil, fmt.Errorf("user with email nobody@example.com: %w", repositories.ErrUserNotFound)).Once()
	_, _, err = authService.LoginUser(ctx, "nobody@example.com", "Abc123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour, zap.NewNop())

	valid := signToken(t, testJWTSecret, jwt.MapClaims{"user_id": "user-123", "exp": time.Now().Add(time.Hour).Unix()})
	claims, err := authService.ValidateToken(valid)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expired := signToken(t, testJWTSecret, jwt.MapClaims{"user_id": "user-123", "exp": time.Now().Add(-time.Hour).Unix()})
	_, err = authService.ValidateToken(expired)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	foreign := signToken(t, "another_secret", jwt.MapClaims{"user_id": "user-123", "exp": time.Now().Add(time.Hour).Unix()})
	_, err = authService.ValidateToken(foreign)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, zap.NewNop())

	active := &models.User{ID: "u-1", FullName: "Ada", IsActive: true, Roles: []string{auth.RoleAdmin}}
	inactive := &models.User{ID: "u-2", FullName: "Bob", IsActive: false, Roles: []string{auth.RoleAdmin}}
	mockRepo.On("GetByID", ctx, "u-1").Return(active, nil).Once()
	mockRepo.On("GetByID", ctx, "u-2").Return(inactive, nil).Once()
	mockRepo.On("GetByID", ctx, "u-3").Return(nil, fmt.Errorf("user with ID u-3: %w", repositories.ErrUserNotFound)).Once()

	token, err := authService.IssueToken("u-1")
	require.NoError(t, err)
	identity, err := authService.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &auth.Identity{ID: "u-1", FullName: "Ada", Roles: []string{auth.RoleAdmin}}, identity)

	token, err = authService.IssueToken("u-2")
	require.NoError(t, err)
	_, err = authService.Authenticate(ctx, token)
	assert.ErrorIs(t, err, services.ErrInactiveUser)

	token, err = authService.IssueToken("u-3")
	require.NoError(t, err)
	_, err = authService.Authenticate(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	noSubject := signToken(t, testJWTSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, err = authService.Authenticate(ctx, noSubject)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	mockRepo.AssertExpectations(t)
}
