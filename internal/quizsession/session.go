// Package quizsession - состояние одной попытки прохождения викторины на стороне клиента
package quizsession

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

// DefaultTimeLimit - бюджет времени попытки в секундах (30 минут)
const DefaultTimeLimit = 1800

// Unanswered - значение слота без зафиксированного ответа
const Unanswered = -1

// State - состояние попытки
type State string

const (
	StateLoading    State = "loading"
	StateEmpty      State = "empty"
	StateInProgress State = "in_progress"
	StateTimedOut   State = "timed_out"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

var (
	ErrNotInProgress    = errors.New("quiz is not in progress")
	ErrNoSelection      = errors.New("select an answer to continue")
	ErrInvalidOption    = errors.New("option index out of range")
	ErrAlreadySubmitted = errors.New("quiz is already being submitted")
)

// Question - вопрос в том виде, в каком его видит клиент
type Question struct {
	ID            uint
	Text          string
	Options       []string
	CorrectAnswer int
}

// Answer - зафиксированный ответ на вопрос
type Answer struct {
	QuestionID uint
	UserAnswer int
	IsCorrect  bool
}

// Result - итог попытки, который отправляется на сервер
type Result struct {
	LocationID     uint
	Month          string
	Year           int
	Score          int
	CorrectAnswers int
	TotalQuestions int
	TimeTaken      int
	TimedOut       bool
	Answers        []Answer
}

// Source загружает вопросы периода
type Source interface {
	Questions(ctx context.Context, locationID uint, month string, year int) ([]Question, error)
}

// Submitter сохраняет результат попытки
type Submitter interface {
	Submit(ctx context.Context, result Result) error
}

// SubmitterFunc позволяет использовать функцию как Submitter
type SubmitterFunc func(ctx context.Context, result Result) error

func (f SubmitterFunc) Submit(ctx context.Context, result Result) error {
	return f(ctx, result)
}

// Session - попытка: Loading -> InProgress -> Submitting -> Completed,
// InProgress -> TimedOut -> Submitting -> Completed, Loading -> Empty.
type Session struct {
	mu sync.Mutex

	state      State
	locationID uint
	month      string
	year       int

	questions []Question
	answers   []int
	current   int
	selected  int

	timeLimit  int
	remaining  int
	submitting bool

	submitter Submitter
	result    *Result
	done      chan struct{}
}

// Option настраивает Session
type Option func(*Session)

// WithTimeLimit задает бюджет времени в секундах
func WithTimeLimit(seconds int) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.timeLimit = seconds
		}
	}
}

// New создает попытку для периода. Вопросы загружаются через Load или Start.
func New(submitter Submitter, locationID uint, month string, year int, opts ...Option) *Session {
	s := &Session{
		state:      StateLoading,
		locationID: locationID,
		month:      month,
		year:       year,
		selected:   Unanswered,
		timeLimit:  DefaultTimeLimit,
		submitter:  submitter,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.remaining = s.timeLimit
	return s
}

// Load запрашивает вопросы периода и запускает попытку
func (s *Session) Load(ctx context.Context, source Source) error {
	questions, err := source.Questions(ctx, s.locationID, s.month, s.year)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	s.Start(questions)
	return nil
}

// Start переводит попытку в InProgress или в Empty, если вопросов нет
func (s *Session) Start(questions []Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return
	}
	if len(questions) == 0 {
		s.state = StateEmpty
		close(s.done)
		return
	}

	s.questions = append([]Question(nil), questions...)
	s.answers = make([]int, len(questions))
	for i := range s.answers {
		s.answers[i] = Unanswered
	}
	s.current = 0
	s.selected = Unanswered
	s.remaining = s.timeLimit
	s.state = StateInProgress
}

// State возвращает текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current возвращает индекс и текущий вопрос
func (s *Session) Current() (int, Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current >= len(s.questions) {
		return 0, Question{}, false
	}
	return s.current, s.questions[s.current], true
}

// Total возвращает количество вопросов
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Remaining возвращает оставшиеся секунды
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Result возвращает итог после Completed
func (s *Session) Result() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result != nil
}

// Done закрывается, когда попытка завершена или пуста
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Select выбирает вариант текущего вопроса. Выбор фиксируется при Next.
func (s *Session) Select(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress || s.submitting {
		return ErrNotInProgress
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return ErrInvalidOption
	}
	s.selected = option
	return nil
}

// Next фиксирует выбор и переходит к следующему вопросу.
// На последнем вопросе отправляет попытку; возвращает true, если попытка отправлена.
func (s *Session) Next(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.state != StateInProgress || s.submitting {
		s.mu.Unlock()
		return false, ErrNotInProgress
	}
	if s.selected == Unanswered {
		s.mu.Unlock()
		return false, ErrNoSelection
	}

	s.answers[s.current] = s.selected
	if s.current < len(s.questions)-1 {
		s.current++
		s.selected = s.answers[s.current]
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	return true, s.Submit(ctx)
}

// Tick уменьшает таймер на секунду. На нуле попытка отправляется автоматически, один раз.
func (s *Session) Tick(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateInProgress || s.submitting {
		s.mu.Unlock()
		return nil
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		s.mu.Unlock()
		return nil
	}
	s.state = StateTimedOut
	s.mu.Unlock()

	log.Printf("[QuizSession] Время вышло, отправляем ответы автоматически")
	return s.Submit(ctx)
}

// Submit отправляет зафиксированные ответы. Защелка submitting исключает повторную отправку,
// например ручную отправку одновременно с истечением таймера.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if s.state != StateInProgress && s.state != StateTimedOut {
		s.mu.Unlock()
		return ErrNotInProgress
	}
	prev := s.state
	s.submitting = true
	s.state = StateSubmitting
	result := s.buildResult(prev == StateTimedOut)
	s.mu.Unlock()

	err := s.submitter.Submit(ctx, result)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Попытка остается открытой для повторной отправки
		s.state = prev
		s.submitting = false
		return fmt.Errorf("submit quiz: %w", err)
	}
	s.result = &result
	s.state = StateCompleted
	close(s.done)
	return nil
}

func (s *Session) buildResult(timedOut bool) Result {
	answers := make([]Answer, 0, len(s.questions))
	correct := 0
	for i, q := range s.questions {
		isCorrect := s.answers[i] != Unanswered && s.answers[i] == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		answers = append(answers, Answer{QuestionID: q.ID, UserAnswer: s.answers[i], IsCorrect: isCorrect})
	}
	return Result{
		LocationID:     s.locationID,
		Month:          s.month,
		Year:           s.year,
		Score:          Score(correct, len(s.questions)),
		CorrectAnswers: correct,
		TotalQuestions: len(s.questions),
		TimeTaken:      s.timeLimit - s.remaining,
		TimedOut:       timedOut,
		Answers:        answers,
	}
}

// Score - процент правильных ответов, округленный до целого
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// Run ведет таймер раз в interval, пока попытка не завершится или не отменится ctx.
// Отмена ctx ничего не сохраняет.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				if errors.Is(err, ErrAlreadySubmitted) {
					continue
				}
				log.Printf("[QuizSession] Ошибка автоматической отправки: %v", err)
				return err
			}
		}
	}
}
