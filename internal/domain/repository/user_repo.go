package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// UpdateSelectedLocation сохраняет выбранную при входе локацию, не трогая пароль
	UpdateSelectedLocation(ctx context.Context, userID, locationID uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}
