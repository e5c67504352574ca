package client

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// User - пользователь из ответа /api/auth/login и /api/auth/me
type User struct {
	ID               uint        `json:"id"`
	Email            string      `json:"email"`
	Role             entity.Role `json:"role"`
	SelectedLocation *uint       `json:"selectedLocation,omitempty"`
}

// Location - локация
type Location struct {
	ID   uint   `json:"id"`
	Name string `json:"location"`
}

// Category - категория книг
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"category"`
}

// Question - вопрос викторины
type Question struct {
	ID            uint      `json:"id"`
	Text          string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correctAnswer"`
	LocationID    uint      `json:"locationId"`
	Location      *Location `json:"location,omitempty"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
}

// Answer - запись журнала ответов
type Answer struct {
	Question   uint `json:"question"`
	UserAnswer int  `json:"userAnswer"`
	IsCorrect  bool `json:"isCorrect"`
}

// ScoreSubmission - тело POST /api/quiz-scores/save
type ScoreSubmission struct {
	Score          int      `json:"score"`
	TotalQuestions int      `json:"totalQuestions"`
	CorrectAnswers int      `json:"correctAnswers"`
	Month          string   `json:"month"`
	Year           int      `json:"year"`
	LocationID     uint     `json:"locationId"`
	TimeTaken      int      `json:"timeTaken"`
	Answers        []Answer `json:"questionsAttempted"`
}

// Score - сохраненный результат
type Score struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"userId"`
	LocationID     uint      `json:"locationId"`
	Location       *Location `json:"location,omitempty"`
	Month          string    `json:"month"`
	Year           int       `json:"year"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	TimeTaken      int       `json:"timeTaken"`
	CompletedAt    time.Time `json:"completedAt"`
}

// SaveResult - ответ на сохранение результата
type SaveResult struct {
	Message        string `json:"message"`
	IsNewHighScore bool   `json:"isNewHighScore"`
	Score          *Score `json:"score"`
}

// LeaderboardEntry - строка лидерборда
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	Score     int    `json:"score"`
	TimeTaken int    `json:"timeTaken"`
}

// UserStats - агрегаты пользователя
type UserStats struct {
	TotalQuizzes        int64   `json:"totalQuizzes"`
	AverageScore        float64 `json:"averageScore"`
	HighestScore        int     `json:"highestScore"`
	TotalCorrectAnswers int64   `json:"totalCorrectAnswers"`
	TotalQuestions      int64   `json:"totalQuestions"`
}

// ManagedUser - строка таблицы пользователей в админке
type ManagedUser struct {
	ID       uint        `json:"id"`
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	Status   string      `json:"status"`
	JoinDate string      `json:"joinDate"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type errorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}
