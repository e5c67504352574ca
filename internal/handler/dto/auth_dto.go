package dto

import "github.com/yourusername/quiz-api/internal/domain/entity"

// LoginRequest - тело POST /api/auth/login
type LoginRequest struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	SelectedLocation *uint  `json:"selectedLocation,omitempty"`
}

// UserResponse - публичное представление пользователя
type UserResponse struct {
	ID               uint        `json:"id"`
	Email            string      `json:"email"`
	Role             entity.Role `json:"role"`
	SelectedLocation *uint       `json:"selectedLocation,omitempty"`
}

// LoginResponse - ответ на успешный вход
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse создает DTO пользователя из сущности
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Role:             u.Role,
		SelectedLocation: u.SelectedLocationID,
	}
}
