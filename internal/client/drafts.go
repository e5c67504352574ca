package client

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ErrInvalidDraft - черновик не прошел проверку до отправки
var ErrInvalidDraft = errors.New("invalid draft")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDraft, fmt.Sprintf(format, args...))
}

// LocationDraft - форма создания локации
type LocationDraft struct {
	Name string
}

func (d LocationDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("location name is required")
	}
	return nil
}

// CategoryDraft - форма создания категории
type CategoryDraft struct {
	Name string
}

func (d CategoryDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("category name is required")
	}
	return nil
}

// QuestionDraft - форма вопроса. Month принимает название или номер месяца.
type QuestionDraft struct {
	Text          string
	Options       []string
	CorrectAnswer int
	LocationID    uint
	Month         string
	Year          int
}

func (d QuestionDraft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return invalid("question text is required")
	}
	if len(d.Options) != entity.QuestionOptionsCount {
		return invalid("exactly %d options are required, got %d", entity.QuestionOptionsCount, len(d.Options))
	}
	for i, opt := range d.Options {
		if strings.TrimSpace(opt) == "" {
			return invalid("option %d is empty", i+1)
		}
	}
	if d.CorrectAnswer < 0 || d.CorrectAnswer >= entity.QuestionOptionsCount {
		return invalid("correct answer must be between 0 and %d", entity.QuestionOptionsCount-1)
	}
	if d.LocationID == 0 {
		return invalid("location is required")
	}
	if _, ok := entity.ParseMonth(d.Month); !ok {
		return invalid("unknown month %q", d.Month)
	}
	if d.Year < 0 {
		return invalid("year must be positive")
	}
	return nil
}

func (d QuestionDraft) body() (map[string]interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	month, _ := entity.ParseMonth(d.Month)
	options := make([]string, len(d.Options))
	for i, opt := range d.Options {
		options[i] = strings.TrimSpace(opt)
	}
	body := map[string]interface{}{
		"question":      strings.TrimSpace(d.Text),
		"options":       options,
		"correctAnswer": d.CorrectAnswer,
		"location":      d.LocationID,
		"month":         month,
	}
	if d.Year > 0 {
		body["year"] = d.Year
	}
	return body, nil
}

// UserDraft - форма создания пользователя в админке
type UserDraft struct {
	Email    string
	Password string
	Role     entity.Role
}

func (d UserDraft) Validate() error {
	email := strings.TrimSpace(d.Email)
	if email == "" {
		return invalid("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email %q is not valid", email)
	}
	if d.Password == "" {
		return invalid("password is required")
	}
	if d.Role != entity.RoleUser && d.Role != entity.RoleAdmin {
		return invalid("role must be %q or %q", entity.RoleUser, entity.RoleAdmin)
	}
	return nil
}
