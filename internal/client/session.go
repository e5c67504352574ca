package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ErrNoSession возвращается, когда сохраненной сессии нет
var ErrNoSession = errors.New("not logged in")

// Capability - действие, доступное пользователю сессии
type Capability string

const (
	CapPlay          Capability = "play"
	CapManageContent Capability = "manage_content"
	CapManageUsers   Capability = "manage_users"
	CapViewAnalytics Capability = "view_analytics"
)

func capabilitiesFor(role entity.Role) map[Capability]bool {
	caps := map[Capability]bool{CapPlay: true}
	if role.IsAdmin() {
		caps[CapManageContent] = true
		caps[CapManageUsers] = true
		caps[CapViewAnalytics] = true
	}
	return caps
}

// Session - состояние клиента после входа. Возможности вычисляются один раз при создании.
type Session struct {
	Token            string `json:"token"`
	User             User   `json:"user"`
	SelectedLocation *uint  `json:"selectedLocation,omitempty"`

	caps map[Capability]bool
}

// NewSession создает сессию из ответа на вход
func NewSession(token string, user User) *Session {
	s := &Session{
		Token:            token,
		User:             user,
		SelectedLocation: user.SelectedLocation,
	}
	s.caps = capabilitiesFor(user.Role)
	return s
}

// Can проверяет, доступно ли действие
func (s *Session) Can(c Capability) bool {
	return s != nil && s.caps[c]
}

// IsAdmin - сокращение для Can(CapManageContent)
func (s *Session) IsAdmin() bool {
	return s.Can(CapManageContent)
}

// DefaultSessionPath - файл сессии в пользовательском каталоге конфигурации
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quizctl", "session.json"), nil
}

// SaveSession записывает сессию в файл с правами только для владельца
func SaveSession(path string, s *Session) error {
	if s == nil || s.Token == "" {
		return fmt.Errorf("save session: empty session")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession читает сессию из файла. ErrNoSession, если файла нет.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	s.caps = capabilitiesFor(s.User.Role)
	return &s, nil
}

// ClearSession удаляет файл сессии
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
