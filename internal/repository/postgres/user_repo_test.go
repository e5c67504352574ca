package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	// Arrange
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()
	user := &entity.User{Email: "user@quiz.com", Password: "user123", Role: entity.RoleUser}

	// Act
	require.NoError(t, repo.Create(ctx, user))
	byEmail, err := repo.GetByEmail(ctx, "user@quiz.com")
	require.NoError(t, err)
	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "user@quiz.com", byID.Email)
	assert.True(t, byID.CheckPassword("user123"), "Пароль должен храниться в виде bcrypt-хеша")
}

func TestUserRepo_DuplicateEmailIsConflict(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "dup@quiz.com", Password: "x", Role: entity.RoleUser}))
	err := repo.Create(ctx, &entity.User{Email: "dup@quiz.com", Password: "y", Role: entity.RoleUser})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepo_NotFound(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "ghost@quiz.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 42), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateSelectedLocation(ctx, 42, 1), apperrors.ErrNotFound)
}

func TestUserRepo_UpdateSelectedLocation_KeepsPassword(t *testing.T) {
	// Arrange
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()
	user := &entity.User{Email: "player@quiz.com", Password: "secret", Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, user))

	// Act
	require.NoError(t, repo.UpdateSelectedLocation(ctx, user.ID, 7))

	// Assert
	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SelectedLocationID)
	assert.Equal(t, uint(7), *stored.SelectedLocationID)
	assert.True(t, stored.IsActive())
	assert.True(t, stored.CheckPassword("secret"))
}

func TestUserRepo_ListCountDelete(t *testing.T) {
	repo := NewUserRepo(newTestDB(t))
	ctx := context.Background()
	for _, email := range []string{"a@quiz.com", "b@quiz.com"} {
		require.NoError(t, repo.Create(ctx, &entity.User{Email: email, Password: "x", Role: entity.RoleUser}))
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, repo.Delete(ctx, users[0].ID))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
