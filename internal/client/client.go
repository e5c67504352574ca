// Package client - HTTP-клиент quiz-api для терминального клиента quizctl
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError - ошибка, которую вернул сервер
type APIError struct {
	StatusCode int
	Message    string
	Type       string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus проверяет, что err - ошибка API с указанным статусом
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client обращается к REST API. Токен берется из сессии, переданной в WithSession.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New создает клиента для сервера baseURL, например http://localhost:8080
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession возвращает копию клиента, которая авторизуется токеном сессии
func (c *Client) WithSession(s *Session) *Client {
	cp := *c
	if s != nil {
		cp.token = s.Token
	}
	return &cp
}

// Login выполняет вход и устанавливает сессию
func (c *Client) Login(ctx context.Context, email, password string, selectedLocation *uint) (*Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	if selectedLocation != nil {
		body["selectedLocation"] = *selectedLocation
	}

	var resp loginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return NewSession(resp.Token, resp.User), nil
}

// Me возвращает текущего пользователя
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Locations возвращает все локации
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.doRequest(ctx, http.MethodGet, "/api/locations", nil, nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateLocation создает локацию из черновика
func (c *Client) CreateLocation(ctx context.Context, draft LocationDraft) (*Location, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var location Location
	body := map[string]string{"location": strings.TrimSpace(draft.Name)}
	if err := c.doRequest(ctx, http.MethodPost, "/api/locations", nil, body, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// Categories возвращает все категории
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.doRequest(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory создает категорию из черновика
func (c *Client) CreateCategory(ctx context.Context, draft CategoryDraft) (*Category, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var category Category
	body := map[string]string{"category": strings.TrimSpace(draft.Name)}
	if err := c.doRequest(ctx, http.MethodPost, "/api/categories", nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Questions возвращает вопросы периода, нулевые значения не фильтруют
func (c *Client) Questions(ctx context.Context, locationID uint, month string, year int) ([]Question, error) {
	query := url.Values{}
	if locationID != 0 {
		query.Set("location", strconv.FormatUint(uint64(locationID), 10))
	}
	if month != "" {
		query.Set("month", month)
	}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}

	var questions []Question
	if err := c.doRequest(ctx, http.MethodGet, "/api/questions", query, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateQuestion создает вопрос из черновика
func (c *Client) CreateQuestion(ctx context.Context, draft QuestionDraft) (*Question, error) {
	body, err := draft.body()
	if err != nil {
		return nil, err
	}
	var question Question
	if err := c.doRequest(ctx, http.MethodPost, "/api/questions", nil, body, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// UpdateQuestion заменяет вопрос id содержимым черновика
func (c *Client) UpdateQuestion(ctx context.Context, id uint, draft QuestionDraft) (*Question, error) {
	body, err := draft.body()
	if err != nil {
		return nil, err
	}
	var question Question
	path := "/api/questions/" + strconv.FormatUint(uint64(id), 10)
	if err := c.doRequest(ctx, http.MethodPut, path, nil, body, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// DeleteQuestion удаляет вопрос
func (c *Client) DeleteQuestion(ctx context.Context, id uint) error {
	path := "/api/questions/" + strconv.FormatUint(uint64(id), 10)
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}

// SaveScore отправляет результат попытки
func (c *Client) SaveScore(ctx context.Context, submission ScoreSubmission) (*SaveResult, error) {
	var result SaveResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/quiz-scores/save", nil, submission, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UserScores возвращает результаты текущего пользователя, year = 0 - за все годы
func (c *Client) UserScores(ctx context.Context, year int) ([]Score, error) {
	query := url.Values{}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}
	var scores []Score
	if err := c.doRequest(ctx, http.MethodGet, "/api/quiz-scores/user-scores", query, nil, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// Leaderboard возвращает десятку лучших за период
func (c *Client) Leaderboard(ctx context.Context, locationID uint, month string, year int) ([]LeaderboardEntry, error) {
	query := url.Values{}
	query.Set("locationId", strconv.FormatUint(uint64(locationID), 10))
	query.Set("month", month)
	query.Set("year", strconv.Itoa(year))

	var entries []LeaderboardEntry
	if err := c.doRequest(ctx, http.MethodGet, "/api/quiz-scores/leaderboard", query, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UserStats возвращает агрегаты текущего пользователя
func (c *Client) UserStats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.doRequest(ctx, http.MethodGet, "/api/quiz-scores/user-stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateUser создает пользователя из черновика (админка)
func (c *Client) CreateUser(ctx context.Context, draft UserDraft) (*ManagedUser, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	body := map[string]string{
		"email":    strings.TrimSpace(draft.Email),
		"password": draft.Password,
		"role":     string(draft.Role),
	}
	var user ManagedUser
	if err := c.doRequest(ctx, http.MethodPost, "/api/user/create-user", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Users возвращает всех пользователей (админка)
func (c *Client) Users(ctx context.Context) ([]ManagedUser, error) {
	var users []ManagedUser
	if err := c.doRequest(ctx, http.MethodGet, "/api/user/get-users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// doRequest выполняет запрос к API и декодирует ответ в out, если out != nil
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	in, out interface{},
) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to do %s request for %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body for %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload errorResponse
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			apiErr.Type = payload.ErrorType
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}
