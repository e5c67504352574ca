package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// DefaultExpirationHrs - срок жизни токена по умолчанию (28 дней)
const DefaultExpirationHrs = 672

// JWTCustomClaims содержит пользовательские поля для токена
type JWTCustomClaims struct {
	UserID uint        `json:"user_id"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет токены HS256. Состояния не хранит.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService создает новый сервис JWT и возвращает ошибку при проблемах
func NewJWTService(secret string, expirationHrs int) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required for JWTService")
	}
	if expirationHrs <= 0 {
		expirationHrs = DefaultExpirationHrs
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: time.Duration(expirationHrs) * time.Hour,
		now:        time.Now,
	}, nil
}

// Expiration возвращает срок жизни выпускаемых токенов
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken создает подписанный токен для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	if user == nil || user.ID == 0 {
		return "", fmt.Errorf("%w: user is required to issue a token", apperrors.ErrValidation)
	}

	issuedAt := s.now()
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Role:   entity.ParseRole(string(user.Role)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка подписи токена для пользователя ID=%d: %v", user.ID, err)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена.
// Истекший токен - apperrors.ErrExpiredToken, любой другой дефект - apperrors.ErrUnauthorized.
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: token is missing", apperrors.ErrUnauthorized)
	}

	claims := &JWTCustomClaims{}
	parser := jwt.Parser{
		ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
	}

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			log.Printf("[JWT] Токен истек для пользователя ID=%d", claims.UserID)
			return nil, apperrors.ErrExpiredToken
		}
		log.Printf("[JWT] Ошибка при разборе токена: %v", err)
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	if !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}
	claims.Role = entity.ParseRole(string(claims.Role))
	return claims, nil
}
