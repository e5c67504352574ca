package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// LocationRepo реализует repository.LocationRepository
type LocationRepo struct {
	db *gorm.DB
}

// NewLocationRepo создает новый репозиторий локаций
func NewLocationRepo(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// Create создает локацию, дубликат имени возвращает apperrors.ErrConflict
func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	return translateError(r.db.WithContext(ctx).Create(location).Error)
}

// GetByID возвращает локацию по ID
func (r *LocationRepo) GetByID(ctx context.Context, id uint) (*entity.Location, error) {
	var location entity.Location
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &location, nil
}

// GetByName возвращает локацию по точному имени
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*entity.Location, error) {
	var location entity.Location
	if err := r.db.WithContext(ctx).Where("location = ?", name).First(&location).Error; err != nil {
		return nil, translateError(err)
	}
	return &location, nil
}

// List возвращает все локации по алфавиту
func (r *LocationRepo) List(ctx context.Context) ([]entity.Location, error) {
	var locations []entity.Location
	err := r.db.WithContext(ctx).Order("location ASC").Find(&locations).Error
	return locations, err
}

// Count возвращает количество локаций
func (r *LocationRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Location{}).Count(&count).Error
	return count, err
}
