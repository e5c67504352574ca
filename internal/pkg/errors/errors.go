package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (нет токена, неверный токен).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials возвращается при неверном email ИЛИ пароле.
	// Форма ошибки одинакова для обоих случаев, чтобы нельзя было перебирать email.
	ErrInvalidCredentials = wrapped(ErrUnauthorized, "invalid email or password")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrExpiredToken используется, когда токен истек.
	ErrExpiredToken = wrapped(ErrUnauthorized, "token is expired")

	// ErrConflict используется при нарушении уникальности (дубликат email, локации, категории).
	ErrConflict = errors.New("resource state conflict")
)

// sentinel - ошибка с собственным текстом, которая при этом матчится через errors.Is на родителя
type sentinel struct {
	parent error
	msg    string
}

func (e *sentinel) Error() string { return e.msg }
func (e *sentinel) Unwrap() error { return e.parent }

func wrapped(parent error, msg string) error {
	return &sentinel{parent: parent, msg: msg}
}
