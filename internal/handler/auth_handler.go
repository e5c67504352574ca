package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// AuthHandler обрабатывает вход и профиль текущего пользователя
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, req.SelectedLocation)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.NewUserResponse(result.User),
	})
}

// GetMe возвращает текущего пользователя
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		handleError(c, "AuthHandler", apperrors.ErrUnauthorized)
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
