package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// AnswerDTO - ответ на один вопрос в теле сохранения результата
type AnswerDTO struct {
	Question   uint `json:"question"`
	UserAnswer int  `json:"userAnswer"`
	IsCorrect  bool `json:"isCorrect"`
}

// SaveQuizRequest - тело POST /api/quiz/save
type SaveQuizRequest struct {
	Score          *int        `json:"score"`
	Month          string      `json:"month"`
	Year           int         `json:"year"`
	Location       uint        `json:"location"`
	TotalQuestions int         `json:"totalQuestions"`
	CorrectAnswers int         `json:"correctAnswers"`
	TimeTaken      int         `json:"timeTaken"`
	Answers        []AnswerDTO `json:"questionsAttempted"`
}

// SaveQuizScoreRequest - тело POST /api/quiz-scores/save
type SaveQuizScoreRequest struct {
	Score          *int        `json:"score"`
	TotalQuestions int         `json:"totalQuestions"`
	CorrectAnswers int         `json:"correctAnswers"`
	Month          string      `json:"month"`
	Year           int         `json:"year"`
	LocationID     uint        `json:"locationId"`
	TimeTaken      int         `json:"timeTaken"`
	Answers        []AnswerDTO `json:"questionsAttempted"`
}

// SaveScoreResponse - ответ на сохранение результата
type SaveScoreResponse struct {
	Message        string            `json:"message"`
	IsNewHighScore bool              `json:"isNewHighScore"`
	Score          *entity.QuizScore `json:"score"`
}

// LeaderboardEntry - строка месячного лидерборда
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	UserID         uint      `json:"userId"`
	Email          string    `json:"email"`
	Score          int       `json:"score"`
	TimeTaken      int       `json:"timeTaken"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

// ScoreRow - строка таблицы всех результатов в админке
type ScoreRow struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Quiz     string `json:"quiz"`
	Score    int    `json:"score"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

// PerformanceBucket - количество результатов в диапазоне
type PerformanceBucket struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

// DashboardStats - сводка для панели администратора
type DashboardStats struct {
	TotalUsers       int64                         `json:"totalUsers"`
	TotalQuestions   int64                         `json:"totalQuestions"`
	TotalLocations   int64                         `json:"totalLocations"`
	TotalAttempts    int64                         `json:"totalAttempts"`
	AverageScore     float64                       `json:"averageScore"`
	Performance      []PerformanceBucket           `json:"performance"`
	LocationAttempts []repository.LocationAttempts `json:"locationAttempts"`
	Year             int                           `json:"year"`
	Monthly          []repository.MonthlyAttempts  `json:"monthly"`
}
