package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// dummyHash проверяется для неизвестного email вместо реального хеша
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// AuthService предоставляет методы для входа и проверки токенов
type AuthService struct {
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	jwtService   *auth.JWTService
}

// LoginResult - выданный токен и пользователь
type LoginResult struct {
	Token string
	User  *entity.User
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	locationRepo repository.LocationRepository,
	jwtService *auth.JWTService,
) (*AuthService, error) {
	if userRepo == nil || locationRepo == nil {
		return nil, fmt.Errorf("user and location repositories are required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:     userRepo,
		locationRepo: locationRepo,
		jwtService:   jwtService,
	}, nil
}

// Login проверяет учетные данные, сохраняет выбранную локацию и выдает токен.
// Неизвестный email и неверный пароль дают одну и ту же ошибку apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, selectedLocation *uint) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if selectedLocation != nil && *selectedLocation != 0 {
		if _, err := s.locationRepo.GetByID(ctx, *selectedLocation); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: selected location does not exist", apperrors.ErrValidation)
			}
			return nil, err
		}
		if err := s.userRepo.UpdateSelectedLocation(ctx, user.ID, *selectedLocation); err != nil {
			log.Printf("[AuthService] Ошибка сохранения локации %d для пользователя ID=%d: %v", *selectedLocation, user.ID, err)
			return nil, err
		}
		locationID := *selectedLocation
		user.SelectedLocationID = &locationID
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("[AuthService] Пользователь ID=%d (%s) вошел в систему", user.ID, user.Role)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		log.Printf("[AuthService] Вход отклонен: email %s не найден", email)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Вход отклонен: неверный пароль для ID=%d", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate проверяет токен без обращения к базе
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.JWTCustomClaims, error) {
	return s.jwtService.ParseToken(token)
}

// GetUserByID возвращает текущего пользователя
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
