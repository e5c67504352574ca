package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ScoreFilter - фильтр по периоду, нулевые значения означают "любой"
type ScoreFilter struct {
	Year  int
	Month string
}

// UserScoreStats - агрегаты по всем попыткам пользователя
type UserScoreStats struct {
	TotalQuizzes        int64   `json:"totalQuizzes"`
	AverageScore        float64 `json:"averageScore"`
	HighestScore        int     `json:"highestScore"`
	TotalCorrectAnswers int64   `json:"totalCorrectAnswers"`
	TotalQuestions      int64   `json:"totalQuestions"`
}

// ScoreSummary - общие агрегаты по всем результатам
type ScoreSummary struct {
	TotalAttempts int64
	AverageScore  float64
}

// LocationAttempts - количество попыток по локации
type LocationAttempts struct {
	LocationID uint   `json:"locationId"`
	Location   string `json:"location"`
	Attempts   int64  `json:"attempts"`
}

// MonthlyAttempts - количество попыток и средний балл за месяц
type MonthlyAttempts struct {
	Month        string  `json:"month"`
	Attempts     int64   `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
}

// ScoreRepository определяет методы для работы с результатами викторин
type ScoreRepository interface {
	// Create возвращает apperrors.ErrConflict при нарушении уникальности периода
	Create(ctx context.Context, score *entity.QuizScore) error
	GetByPeriod(ctx context.Context, userID, locationID uint, month string, year int) (*entity.QuizScore, error)
	Update(ctx context.Context, score *entity.QuizScore) error
	// ListByUser возвращает результаты пользователя, последние первыми, с локацией
	ListByUser(ctx context.Context, userID uint, filter ScoreFilter) ([]entity.QuizScore, error)
	// Leaderboard возвращает лучшие результаты периода: счет по убыванию, время по возрастанию
	Leaderboard(ctx context.Context, locationID uint, month string, year int, limit int) ([]entity.QuizScore, error)
	UserStats(ctx context.Context, userID uint) (*UserScoreStats, error)
	// ListAll возвращает все результаты с пользователем и локацией
	ListAll(ctx context.Context, filter ScoreFilter) ([]entity.QuizScore, error)

	Summary(ctx context.Context) (*ScoreSummary, error)
	// CountInRange считает результаты со счетом в [min, max]
	CountInRange(ctx context.Context, min, max int) (int64, error)
	AttemptsByLocation(ctx context.Context) ([]LocationAttempts, error)
	MonthlyAttempts(ctx context.Context, year int) ([]MonthlyAttempts, error)
}
