package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// LocationService управляет справочником локаций
type LocationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService создает новый сервис локаций
func NewLocationService(locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// Create добавляет локацию. Повтор имени дает apperrors.ErrConflict,
// в том числе при гонке двух запросов (через уникальный индекс).
func (s *LocationService) Create(ctx context.Context, name string) (*entity.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: location name is required", apperrors.ErrValidation)
	}

	if _, err := s.locationRepo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: location %q already exists", apperrors.ErrConflict, name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	location := &entity.Location{Name: name}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: location %q already exists", apperrors.ErrConflict, name)
		}
		return nil, err
	}

	log.Printf("[LocationService] Создана локация ID=%d %q", location.ID, location.Name)
	return location, nil
}

// List возвращает все локации
func (s *LocationService) List(ctx context.Context) ([]entity.Location, error) {
	return s.locationRepo.List(ctx)
}

// CategoryService управляет категориями книг
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create добавляет категорию с той же семантикой конфликта, что и у локаций
func (s *CategoryService) Create(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	if _, err := s.categoryRepo.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrConflict, name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrConflict, name)
		}
		return nil, err
	}
	return category, nil
}

// List возвращает все категории
func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}
