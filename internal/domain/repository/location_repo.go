package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// LocationRepository определяет методы для работы с локациями
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id uint) (*entity.Location, error)
	GetByName(ctx context.Context, name string) (*entity.Location, error)
	List(ctx context.Context) ([]entity.Location, error)
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository определяет методы для работы с категориями книг
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}

// BookRepository определяет методы для работы с книгами
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	// List возвращает книги с подгруженной категорией
	List(ctx context.Context) ([]entity.Book, error)
}
