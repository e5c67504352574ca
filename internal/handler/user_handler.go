package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// UserHandler обрабатывает администрирование пользователей
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser обрабатывает POST /api/user/create-user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), service.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserListItem(user))
}

// ListUsers обрабатывает GET /api/user/get-users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser обрабатывает PUT /api/user/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), middleware.UintFromContext(c, "userID"), service.UserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListItem(user))
}

// DeleteUser обрабатывает DELETE /api/user/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), middleware.UintFromContext(c, "userID")); err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
