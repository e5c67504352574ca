package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func TestUserService_CreateUser(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	emailService := new(MockEmailService)
	svc := NewUserService(userRepo, emailService)

	userRepo.On("GetByEmail", mock.Anything, "new@quiz.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@quiz.com" && u.Role == entity.RoleAdmin && u.Password == "secret"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 42
	}).Return(nil)
	emailService.On("SendAccountCreated", mock.Anything, "new@quiz.com", entity.RoleAdmin).Return(nil)

	// Act
	user, err := svc.CreateUser(context.Background(), UserInput{Email: " New@Quiz.com", Password: "secret", Role: "Admin"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	userRepo.AssertExpectations(t)
	emailService.AssertExpectations(t)
}

func TestUserService_CreateUser_EmailFailureDoesNotFail(t *testing.T) {
	userRepo := new(MockUserRepository)
	emailService := new(MockEmailService)
	svc := NewUserService(userRepo, emailService)

	userRepo.On("GetByEmail", mock.Anything, "new@quiz.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	emailService.On("SendAccountCreated", mock.Anything, "new@quiz.com", entity.RoleUser).Return(errors.New("smtp down"))

	user, err := svc.CreateUser(context.Background(), UserInput{Email: "new@quiz.com", Password: "secret", Role: "user"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), nil)

	cases := []UserInput{
		{Email: "", Password: "p", Role: "user"},
		{Email: "a@b.c", Password: "", Role: "user"},
		{Email: "a@b.c", Password: "p", Role: " "},
		{Email: "not-an-email", Password: "p", Role: "user"},
	}
	for _, in := range cases {
		_, err := svc.CreateUser(context.Background(), in)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "input %+v", in)
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nil)
	userRepo.On("GetByEmail", mock.Anything, "user@quiz.com").Return(&entity.User{ID: 2, Email: "user@quiz.com"}, nil)

	_, err := svc.CreateUser(context.Background(), UserInput{Email: "user@quiz.com", Password: "p", Role: "user"})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_ListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nil)
	loc := uint(1)
	joined := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	userRepo.On("List", mock.Anything).Return([]entity.User{
		{ID: 1, Email: "a@quiz.com", Role: entity.RoleAdmin, SelectedLocationID: &loc, CreatedAt: joined},
		{ID: 2, Email: "b@quiz.com", Role: entity.RoleUser, CreatedAt: joined},
	}, nil)

	items, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "active", items[0].Status)
	assert.Equal(t, "inactive", items[1].Status)
	assert.Equal(t, "2025-03-04", items[1].JoinDate)
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("пароль не меняется, если пустой", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, nil)
		userRepo.On("GetByID", mock.Anything, uint(5)).Return(&entity.User{ID: 5, Email: "u@quiz.com", Password: "$2a$hash", Role: entity.RoleUser}, nil)
		userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		user, err := svc.UpdateUser(context.Background(), 5, UserInput{Email: "u@quiz.com", Role: "admin"})

		require.NoError(t, err)
		assert.Equal(t, "$2a$hash", user.Password)
		assert.Equal(t, entity.RoleAdmin, user.Role)
	})

	t.Run("новый пароль передается на хеширование", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, nil)
		userRepo.On("GetByID", mock.Anything, uint(5)).Return(&entity.User{ID: 5, Email: "u@quiz.com", Password: "$2a$hash"}, nil)
		userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		user, err := svc.UpdateUser(context.Background(), 5, UserInput{Email: "u@quiz.com", Role: "user", Password: "fresh"})

		require.NoError(t, err)
		assert.Equal(t, "fresh", user.Password)
	})

	t.Run("email другого пользователя", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, nil)
		userRepo.On("GetByID", mock.Anything, uint(5)).Return(&entity.User{ID: 5, Email: "u@quiz.com"}, nil)
		userRepo.On("GetByEmail", mock.Anything, "taken@quiz.com").Return(&entity.User{ID: 6, Email: "taken@quiz.com"}, nil)

		_, err := svc.UpdateUser(context.Background(), 5, UserInput{Email: "taken@quiz.com", Role: "user"})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, nil)
		userRepo.On("GetByID", mock.Anything, uint(9)).Return(nil, apperrors.ErrNotFound)

		_, err := svc.UpdateUser(context.Background(), 9, UserInput{Email: "x@quiz.com", Role: "user"})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nil)
	userRepo.On("Delete", mock.Anything, uint(3)).Return(nil)
	userRepo.On("Delete", mock.Anything, uint(4)).Return(apperrors.ErrNotFound)

	assert.NoError(t, svc.DeleteUser(context.Background(), 3))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 4), apperrors.ErrNotFound)
}
