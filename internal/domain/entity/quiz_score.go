package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AnsweredQuestion - запись журнала ответов попытки
type AnsweredQuestion struct {
	QuestionID uint `json:"question"`
	UserAnswer int  `json:"userAnswer"`
	IsCorrect  bool `json:"isCorrect"`
}

// AnswerLog - журнал ответов, хранится в JSONB
type AnswerLog []AnsweredQuestion

// Scan реализует интерфейс sql.Scanner для AnswerLog
func (l *AnswerLog) Scan(value interface{}) error {
	if value == nil {
		*l = AnswerLog{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*l = AnswerLog{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для AnswerLog
func (l AnswerLog) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// QuizScore - лучший результат пользователя за период (локация, месяц, год).
// На один период приходится не более одной записи, счет только растет.
type QuizScore struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;uniqueIndex:idx_quiz_scores_period,priority:1" json:"userId"`
	User               *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LocationID         uint      `gorm:"not null;uniqueIndex:idx_quiz_scores_period,priority:2;index:idx_quiz_scores_board,priority:1" json:"locationId"`
	Location           *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Month              string    `gorm:"size:20;not null;uniqueIndex:idx_quiz_scores_period,priority:3;index:idx_quiz_scores_board,priority:2" json:"month"`
	Year               int       `gorm:"not null;uniqueIndex:idx_quiz_scores_period,priority:4;index:idx_quiz_scores_board,priority:3" json:"year"`
	Score              int       `gorm:"not null" json:"score"`
	TotalQuestions     int       `gorm:"not null;default:0" json:"totalQuestions"`
	CorrectAnswers     int       `gorm:"not null;default:0" json:"correctAnswers"`
	TimeTaken          int       `gorm:"not null;default:0" json:"timeTaken"` // в секундах
	CompletedAt        time.Time `gorm:"not null;index" json:"completedAt"`
	QuestionsAttempted AnswerLog `gorm:"type:jsonb" json:"questionsAttempted"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (QuizScore) TableName() string {
	return "quiz_scores"
}

// MinScore и MaxScore - границы процентного счета
const (
	MinScore = 0
	MaxScore = 100
)

// ScoreStatus - качественная оценка результата для админки
func ScoreStatus(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 70:
		return "average"
	default:
		return "needs-improvement"
	}
}

// ApplyIfBetter переносит данные новой попытки в запись, только если счет строго выше.
// Возвращает true, если запись изменена.
func (s *QuizScore) ApplyIfBetter(attempt *QuizScore) bool {
	if attempt.Score <= s.Score {
		return false
	}
	s.Score = attempt.Score
	s.TotalQuestions = attempt.TotalQuestions
	s.CorrectAnswers = attempt.CorrectAnswers
	s.TimeTaken = attempt.TimeTaken
	s.CompletedAt = attempt.CompletedAt
	s.QuestionsAttempted = attempt.QuestionsAttempted
	return true
}
