package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// UserService предоставляет методы администрирования пользователей
type UserService struct {
	userRepo     repository.UserRepository
	emailService EmailService
}

// UserInput - данные для создания или изменения пользователя
type UserInput struct {
	Email    string
	Password string
	Role     string
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, emailService EmailService) *UserService {
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	return &UserService{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
	}
	return nil
}

// CreateUser создает пользователя и отправляет письмо о созданной учетной записи
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || strings.TrimSpace(input.Role) == "" {
		return nil, fmt.Errorf("%w: email, password and role are required", apperrors.ErrValidation)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", apperrors.ErrConflict, email)
	}

	user := &entity.User{
		Email:    email,
		Password: input.Password,
		Role:     entity.ParseRole(input.Role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("[UserService] Ошибка создания пользователя %s: %v", email, err)
		return nil, err
	}

	// Письмо не влияет на результат создания
	if err := s.emailService.SendAccountCreated(ctx, user.Email, user.Role); err != nil {
		log.Printf("[UserService] Не удалось отправить письмо пользователю ID=%d: %v", user.ID, err)
	}

	log.Printf("[UserService] Создан пользователь ID=%d роль=%s", user.ID, user.Role)
	return user, nil
}

// ListUsers возвращает всех пользователей для админки
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserListItem, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserListItem, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserListItem(&users[i]))
	}
	return items, nil
}

// UpdateUser меняет email и роль, пароль - только если передан
func (s *UserService) UpdateUser(ctx context.Context, id uint, input UserInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || strings.TrimSpace(input.Role) == "" {
		return nil, fmt.Errorf("%w: email and role are required", apperrors.ErrValidation)
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != user.Email {
		if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing.ID != user.ID {
			return nil, fmt.Errorf("%w: user with email %s already exists", apperrors.ErrConflict, email)
		}
	}

	user.Email = email
	user.Role = entity.ParseRole(input.Role)
	if input.Password != "" {
		// Новый открытый пароль будет захеширован в BeforeSave
		user.Password = input.Password
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("[UserService] Ошибка обновления пользователя ID=%d: %v", id, err)
		return nil, err
	}
	return user, nil
}

// DeleteUser удаляет пользователя
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[UserService] Удален пользователь ID=%d", id)
	return nil
}
