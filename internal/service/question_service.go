package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionService управляет вопросами викторины
type QuestionService struct {
	questionRepo repository.QuestionRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

// QuestionInput - данные вопроса из формы администратора
type QuestionInput struct {
	Text          string
	Options       []string
	CorrectAnswer *int
	LocationID    uint
	Month         string
	Year          int
}

// QuestionQuery - фильтр списка вопросов. Month принимает название или номер.
type QuestionQuery struct {
	LocationID uint
	Month      string
	Year       int
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, locationRepo repository.LocationRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		locationRepo: locationRepo,
		now:          time.Now,
	}
}

// validate проверяет вопрос до обращения к хранилищу и приводит поля к каноническому виду
func (s *QuestionService) validate(input QuestionInput) (*entity.Question, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if len(input.Options) != entity.QuestionOptionsCount {
		return nil, fmt.Errorf("%w: exactly %d options are required, got %d",
			apperrors.ErrValidation, entity.QuestionOptionsCount, len(input.Options))
	}
	options := make(entity.StringArray, len(input.Options))
	for i, opt := range input.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return nil, fmt.Errorf("%w: option %d is empty", apperrors.ErrValidation, i+1)
		}
		options[i] = opt
	}
	if input.CorrectAnswer == nil {
		return nil, fmt.Errorf("%w: correct answer is required", apperrors.ErrValidation)
	}
	if *input.CorrectAnswer < 0 || *input.CorrectAnswer >= entity.QuestionOptionsCount {
		return nil, fmt.Errorf("%w: correct answer must be between 0 and %d",
			apperrors.ErrValidation, entity.QuestionOptionsCount-1)
	}
	if input.LocationID == 0 {
		return nil, fmt.Errorf("%w: location is required", apperrors.ErrValidation)
	}
	month, ok := entity.ParseMonth(input.Month)
	if !ok {
		return nil, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, input.Month)
	}
	year := input.Year
	if year == 0 {
		year = s.now().Year()
	}
	if year < 0 {
		return nil, fmt.Errorf("%w: year must be positive", apperrors.ErrValidation)
	}

	return &entity.Question{
		Text:          text,
		Options:       options,
		CorrectAnswer: *input.CorrectAnswer,
		LocationID:    input.LocationID,
		Month:         month,
		Year:          year,
	}, nil
}

func (s *QuestionService) requireLocation(ctx context.Context, id uint) (*entity.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: location %d not found", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return location, nil
}

// Create создает вопрос. Несуществующая локация - apperrors.ErrNotFound.
func (s *QuestionService) Create(ctx context.Context, input QuestionInput) (*entity.Question, error) {
	question, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	location, err := s.requireLocation(ctx, question.LocationID)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		log.Printf("[QuestionService] Ошибка создания вопроса: %v", err)
		return nil, err
	}
	question.Location = location

	log.Printf("[QuestionService] Создан вопрос ID=%d для %s %s %d", question.ID, location.Name, question.Month, question.Year)
	return question, nil
}

// List возвращает вопросы по фильтру, новые первыми
func (s *QuestionService) List(ctx context.Context, query QuestionQuery) ([]entity.Question, error) {
	filter := repository.QuestionFilter{LocationID: query.LocationID, Year: query.Year}
	if query.Month != "" {
		month, ok := entity.ParseMonth(query.Month)
		if !ok {
			return nil, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, query.Month)
		}
		filter.Month = month
	}
	return s.questionRepo.List(ctx, filter)
}

// Get возвращает вопрос по ID
func (s *QuestionService) Get(ctx context.Context, id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// Update заменяет данные вопроса с той же валидацией, что и при создании
func (s *QuestionService) Update(ctx context.Context, id uint, input QuestionInput) (*entity.Question, error) {
	question, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	location, err := s.requireLocation(ctx, question.LocationID)
	if err != nil {
		return nil, err
	}

	question.ID = id
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	updated, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated.Location == nil {
		updated.Location = location
	}
	return updated, nil
}

// Delete удаляет вопрос
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[QuestionService] Удален вопрос ID=%d", id)
	return nil
}
