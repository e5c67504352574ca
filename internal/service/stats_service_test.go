package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/repository"
)

func TestStatsService_GetDashboardStats(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	questionRepo := new(MockQuestionRepository)
	locationRepo := new(MockLocationRepository)
	scoreRepo := new(MockScoreRepository)
	svc := NewStatsService(userRepo, questionRepo, locationRepo, scoreRepo)
	svc.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

	userRepo.On("Count", mock.Anything).Return(int64(3), nil)
	questionRepo.On("Count", mock.Anything).Return(int64(12), nil)
	locationRepo.On("Count", mock.Anything).Return(int64(2), nil)
	scoreRepo.On("Summary", mock.Anything).Return(&repository.ScoreSummary{TotalAttempts: 4, AverageScore: 76.6666}, nil)
	scoreRepo.On("CountInRange", mock.Anything, 90, 100).Return(int64(1), nil)
	scoreRepo.On("CountInRange", mock.Anything, 80, 89).Return(int64(1), nil)
	scoreRepo.On("CountInRange", mock.Anything, 70, 79).Return(int64(0), nil)
	scoreRepo.On("CountInRange", mock.Anything, 60, 69).Return(int64(1), nil)
	scoreRepo.On("CountInRange", mock.Anything, 0, 59).Return(int64(1), nil)
	scoreRepo.On("AttemptsByLocation", mock.Anything).Return(nil, nil)
	scoreRepo.On("MonthlyAttempts", mock.Anything, 2025).Return([]repository.MonthlyAttempts{
		{Month: "March", Attempts: 2, AverageScore: 82.5},
		{Month: "January", Attempts: 2, AverageScore: 70.333},
	}, nil)

	// Act
	stats, err := svc.GetDashboardStats(context.Background(), 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2025, stats.Year)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(12), stats.TotalQuestions)
	assert.Equal(t, int64(2), stats.TotalLocations)
	assert.Equal(t, int64(4), stats.TotalAttempts)
	assert.Equal(t, 76.67, stats.AverageScore)

	require.Len(t, stats.Performance, 5)
	assert.Equal(t, "90-100%", stats.Performance[0].Range)
	assert.Equal(t, "Below 60%", stats.Performance[4].Range)
	assert.NotNil(t, stats.LocationAttempts)

	require.Len(t, stats.Monthly, 12)
	assert.Equal(t, "January", stats.Monthly[0].Month)
	assert.Equal(t, 70.33, stats.Monthly[0].AverageScore)
	assert.Equal(t, int64(0), stats.Monthly[1].Attempts)
	assert.Equal(t, int64(2), stats.Monthly[2].Attempts)
	assert.Equal(t, "December", stats.Monthly[11].Month)
}

func TestStatsService_PropagatesErrors(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewStatsService(userRepo, new(MockQuestionRepository), new(MockLocationRepository), new(MockScoreRepository))
	userRepo.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := svc.GetDashboardStats(context.Background(), 2025)

	assert.Error(t, err)
}
