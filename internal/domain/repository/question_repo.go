package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionFilter - условия выборки вопросов, пустые поля не участвуют в фильтре
type QuestionFilter struct {
	LocationID uint
	Month      string
	Year       int
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uint) error
	// List возвращает вопросы по фильтру, новые первыми, с подгруженной локацией
	List(ctx context.Context, filter QuestionFilter) ([]entity.Question, error)
	Count(ctx context.Context) (int64, error)
}
