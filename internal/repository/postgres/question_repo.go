package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return translateError(r.db.WithContext(ctx).Omit("Location").Create(question).Error)
}

// GetByID возвращает вопрос по ID вместе с локацией
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	if err := r.db.WithContext(ctx).Preload("Location").First(&question, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// Update сохраняет изменения вопроса
func (r *QuestionRepo) Update(ctx context.Context, question *entity.Question) error {
	result := r.db.WithContext(ctx).Model(&entity.Question{}).
		Where("id = ?", question.ID).
		Select("question", "options", "correct_answer", "location_id", "month", "year", "updated_at").
		Updates(question)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List возвращает вопросы по фильтру, новые первыми
func (r *QuestionRepo) List(ctx context.Context, filter repository.QuestionFilter) ([]entity.Question, error) {
	query := r.db.WithContext(ctx).Preload("Location")
	if filter.LocationID != 0 {
		query = query.Where("location_id = ?", filter.LocationID)
	}
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var questions []entity.Question
	err := query.Order("created_at DESC").Order("id DESC").Find(&questions).Error
	return questions, err
}

// Count возвращает общее количество вопросов
func (r *QuestionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Question{}).Count(&count).Error
	return count, err
}
