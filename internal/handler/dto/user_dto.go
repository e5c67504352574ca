package dto

import "github.com/yourusername/quiz-api/internal/domain/entity"

// CreateUserRequest - тело POST /api/user/create-user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest - тело PUT /api/user/users/:id, пустой пароль не меняется
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password,omitempty"`
}

// UserListItem - строка таблицы пользователей в админке
type UserListItem struct {
	ID       uint        `json:"id"`
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	Status   string      `json:"status"` // active | inactive
	JoinDate string      `json:"joinDate"`
}

// NewUserListItem формирует строку таблицы пользователей
func NewUserListItem(u *entity.User) UserListItem {
	status := "inactive"
	if u.IsActive() {
		status = "active"
	}
	return UserListItem{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		Status:   status,
		JoinDate: u.CreatedAt.Format("2006-01-02"),
	}
}
