package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create создает категорию
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error)
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// GetByName возвращает категорию по имени
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("category = ?", name).First(&category).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

// List возвращает все категории
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("category ASC").Find(&categories).Error
	return categories, err
}

// BookRepo реализует repository.BookRepository
type BookRepo struct {
	db *gorm.DB
}

// NewBookRepo создает новый репозиторий книг
func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

// Create сохраняет запись о загруженной книге
func (r *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	return translateError(r.db.WithContext(ctx).Omit("Category").Create(book).Error)
}

// List возвращает книги с категорией, новые первыми
func (r *BookRepo) List(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Order("id DESC").
		Find(&books).Error
	return books, err
}
