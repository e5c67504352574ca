package service

import (
	"context"
	"math"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
)

// performanceRanges - диапазоны распределения результатов на панели администратора
var performanceRanges = []struct {
	label    string
	min, max int
}{
	{"90-100%", 90, 100},
	{"80-89%", 80, 89},
	{"70-79%", 70, 79},
	{"60-69%", 60, 69},
	{"Below 60%", 0, 59},
}

// StatsService собирает сводку для панели администратора
type StatsService struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	locationRepo repository.LocationRepository
	scoreRepo    repository.ScoreRepository
	now          func() time.Time
}

// NewStatsService создает сервис статистики
func NewStatsService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	locationRepo repository.LocationRepository,
	scoreRepo repository.ScoreRepository,
) *StatsService {
	return &StatsService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		locationRepo: locationRepo,
		scoreRepo:    scoreRepo,
		now:          time.Now,
	}
}

// GetDashboardStats возвращает итоги, распределение, попытки по локациям и помесячную динамику года.
// year == 0 означает текущий год.
func (s *StatsService) GetDashboardStats(ctx context.Context, year int) (*dto.DashboardStats, error) {
	if year <= 0 {
		year = s.now().Year()
	}

	stats := &dto.DashboardStats{Year: year}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalQuestions, err = s.questionRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalLocations, err = s.locationRepo.Count(ctx); err != nil {
		return nil, err
	}

	summary, err := s.scoreRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalAttempts = summary.TotalAttempts
	stats.AverageScore = roundTo(summary.AverageScore, 2)

	stats.Performance = make([]dto.PerformanceBucket, 0, len(performanceRanges))
	for _, r := range performanceRanges {
		count, err := s.scoreRepo.CountInRange(ctx, r.min, r.max)
		if err != nil {
			return nil, err
		}
		stats.Performance = append(stats.Performance, dto.PerformanceBucket{Range: r.label, Count: count})
	}

	if stats.LocationAttempts, err = s.scoreRepo.AttemptsByLocation(ctx); err != nil {
		return nil, err
	}
	if stats.LocationAttempts == nil {
		stats.LocationAttempts = []repository.LocationAttempts{}
	}

	monthly, err := s.scoreRepo.MonthlyAttempts(ctx, year)
	if err != nil {
		return nil, err
	}
	stats.Monthly = fillMonths(monthly)

	return stats, nil
}

// fillMonths возвращает все 12 месяцев по порядку, отсутствующие - с нулями
func fillMonths(rows []repository.MonthlyAttempts) []repository.MonthlyAttempts {
	byMonth := make(map[string]repository.MonthlyAttempts, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}
	result := make([]repository.MonthlyAttempts, 0, len(entity.Months))
	for _, m := range entity.Months {
		row, ok := byMonth[m]
		if !ok {
			row = repository.MonthlyAttempts{Month: m}
		}
		row.AverageScore = roundTo(row.AverageScore, 2)
		result = append(result, row)
	}
	return result
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
