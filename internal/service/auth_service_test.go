package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

func hashedUser(t *testing.T, id uint, email, password string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, Email: email, Password: string(hash), Role: role}
}

func newTestAuthService(t *testing.T) (*AuthService, *MockUserRepository, *MockLocationRepository, *auth.JWTService) {
	t.Helper()
	userRepo := new(MockUserRepository)
	locationRepo := new(MockLocationRepository)
	jwtService, err := auth.NewJWTService("test-secret", auth.DefaultExpirationHrs)
	require.NoError(t, err)
	svc, err := NewAuthService(userRepo, locationRepo, jwtService)
	require.NoError(t, err)
	return svc, userRepo, locationRepo, jwtService
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	_, err := NewAuthService(nil, new(MockLocationRepository), nil)
	assert.Error(t, err)

	_, err = NewAuthService(new(MockUserRepository), new(MockLocationRepository), nil)
	assert.Error(t, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	svc, userRepo, _, jwtService := newTestAuthService(t)
	user := hashedUser(t, 7, "user@quiz.com", "user123", entity.RoleUser)
	userRepo.On("GetByEmail", mock.Anything, "user@quiz.com").Return(user, nil)

	// Act
	result, err := svc.Login(context.Background(), "  User@Quiz.com ", "user123", nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(7), result.User.ID)
	claims, err := jwtService.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)
	userRepo.AssertNotCalled(t, "UpdateSelectedLocation", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	// Arrange
	svc, userRepo, _, _ := newTestAuthService(t)
	user := hashedUser(t, 1, "admin@quiz.com", "admin123", entity.RoleAdmin)
	userRepo.On("GetByEmail", mock.Anything, "admin@quiz.com").Return(user, nil)
	userRepo.On("GetByEmail", mock.Anything, "ghost@quiz.com").Return(nil, apperrors.ErrNotFound)

	// Act
	_, wrongPassword := svc.Login(context.Background(), "admin@quiz.com", "nope", nil)
	_, unknownEmail := svc.Login(context.Background(), "ghost@quiz.com", "admin123", nil)

	// Assert
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassword, apperrors.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "", "secret", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Login(context.Background(), "a@b.c", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_PersistsSelectedLocation(t *testing.T) {
	// Arrange
	svc, userRepo, locationRepo, _ := newTestAuthService(t)
	user := hashedUser(t, 3, "user@quiz.com", "user123", entity.RoleUser)
	locationID := uint(5)
	userRepo.On("GetByEmail", mock.Anything, "user@quiz.com").Return(user, nil)
	locationRepo.On("GetByID", mock.Anything, uint(5)).Return(&entity.Location{ID: 5, Name: "Goa"}, nil)
	userRepo.On("UpdateSelectedLocation", mock.Anything, uint(3), uint(5)).Return(nil)

	// Act
	result, err := svc.Login(context.Background(), "user@quiz.com", "user123", &locationID)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.User.SelectedLocationID)
	assert.Equal(t, uint(5), *result.User.SelectedLocationID)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownSelectedLocation(t *testing.T) {
	svc, userRepo, locationRepo, _ := newTestAuthService(t)
	user := hashedUser(t, 3, "user@quiz.com", "user123", entity.RoleUser)
	locationID := uint(99)
	userRepo.On("GetByEmail", mock.Anything, "user@quiz.com").Return(user, nil)
	locationRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.Login(context.Background(), "user@quiz.com", "user123", &locationID)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "UpdateSelectedLocation", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	svc, userRepo, _, _ := newTestAuthService(t)
	dbErr := errors.New("connection refused")
	userRepo.On("GetByEmail", mock.Anything, "user@quiz.com").Return(nil, dbErr)

	_, err := svc.Login(context.Background(), "user@quiz.com", "user123", nil)

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _, jwtService := newTestAuthService(t)
	token, err := jwtService.GenerateToken(&entity.User{ID: 11, Role: entity.RoleAdmin})
	require.NoError(t, err)

	claims, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(11), claims.UserID)
	assert.True(t, claims.Role.IsAdmin())

	_, err = svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
