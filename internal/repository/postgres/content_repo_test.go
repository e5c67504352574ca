package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func TestLocationRepo_DuplicateNameIsConflict(t *testing.T) {
	// Arrange
	repo := NewLocationRepo(newTestDB(t))
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Create(ctx, &entity.Location{Name: "Goa"}))
	err := repo.Create(ctx, &entity.Location{Name: "Goa"})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	found, err := repo.GetByName(ctx, "Goa")
	require.NoError(t, err)
	assert.Equal(t, "Goa", found.Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLocationRepo_ListSorted(t *testing.T) {
	repo := NewLocationRepo(newTestDB(t))
	ctx := context.Background()
	for _, name := range []string{"Kerala", "Delhi", "Goa"} {
		require.NoError(t, repo.Create(ctx, &entity.Location{Name: name}))
	}

	locations, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 3)
	assert.Equal(t, "Delhi", locations[0].Name)
	assert.Equal(t, "Kerala", locations[2].Name)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCategoryAndBookRepo(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	categories := NewCategoryRepo(db)
	books := NewBookRepo(db)
	ctx := context.Background()

	category := &entity.Category{Name: "History"}
	require.NoError(t, categories.Create(ctx, category))
	assert.ErrorIs(t, categories.Create(ctx, &entity.Category{Name: "History"}), apperrors.ErrConflict)

	// Act
	require.NoError(t, books.Create(ctx, &entity.Book{Title: "Ancient India", CategoryID: category.ID, FileURL: "/uploads/a.pdf"}))
	list, err := books.List(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, "History", list[0].Category.Name)
}

func TestQuestionRepo_CRUDAndFilter(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	locations := NewLocationRepo(db)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	goa := &entity.Location{Name: "Goa"}
	delhi := &entity.Location{Name: "Delhi"}
	require.NoError(t, locations.Create(ctx, goa))
	require.NoError(t, locations.Create(ctx, delhi))

	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	seed := []*entity.Question{
		{Text: "Q1", Options: entity.StringArray{"a", "b", "c", "d"}, CorrectAnswer: 0, LocationID: goa.ID, Month: "March", Year: 2024, CreatedAt: base},
		{Text: "Q2", Options: entity.StringArray{"a", "b", "c", "d"}, CorrectAnswer: 1, LocationID: goa.ID, Month: "March", Year: 2024, CreatedAt: base.Add(time.Hour)},
		{Text: "Q3", Options: entity.StringArray{"a", "b", "c", "d"}, CorrectAnswer: 2, LocationID: delhi.ID, Month: "March", Year: 2024, CreatedAt: base},
		{Text: "Q4", Options: entity.StringArray{"a", "b", "c", "d"}, CorrectAnswer: 3, LocationID: goa.ID, Month: "April", Year: 2024, CreatedAt: base},
	}
	for _, q := range seed {
		require.NoError(t, repo.Create(ctx, q))
	}

	// Act: фильтр по локации и месяцу
	list, err := repo.List(ctx, repository.QuestionFilter{LocationID: goa.ID, Month: "March", Year: 2024})

	// Assert: новые первыми, локация подгружена
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Q2", list[0].Text)
	assert.Equal(t, "Q1", list[1].Text)
	require.NotNil(t, list[0].Location)
	assert.Equal(t, "Goa", list[0].Location.Name)
	assert.Equal(t, entity.StringArray{"a", "b", "c", "d"}, list[0].Options)

	all, err := repo.List(ctx, repository.QuestionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// Update и Delete
	q := seed[0]
	q.Text = "Q1 edited"
	q.CorrectAnswer = 3
	require.NoError(t, repo.Update(ctx, q))
	stored, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1 edited", stored.Text)
	assert.Equal(t, 3, stored.CorrectAnswer)

	require.NoError(t, repo.Delete(ctx, q.ID))
	_, err = repo.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Question{ID: 999, Text: "x", Options: entity.StringArray{"a", "b", "c", "d"}}), apperrors.ErrNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
