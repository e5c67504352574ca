package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий результатов
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Create сохраняет первый результат периода.
// Уникальный индекс idx_quiz_scores_period превращает гонку в apperrors.ErrConflict.
func (r *ScoreRepo) Create(ctx context.Context, score *entity.QuizScore) error {
	return translateError(r.db.WithContext(ctx).Omit("User", "Location").Create(score).Error)
}

// GetByPeriod возвращает результат пользователя за период
func (r *ScoreRepo) GetByPeriod(ctx context.Context, userID, locationID uint, month string, year int) (*entity.QuizScore, error) {
	var score entity.QuizScore
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND location_id = ? AND month = ? AND year = ?", userID, locationID, month, year).
		First(&score).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &score, nil
}

// Update перезаписывает поля попытки
func (r *ScoreRepo) Update(ctx context.Context, score *entity.QuizScore) error {
	return translateError(r.db.WithContext(ctx).Model(score).
		Select("score", "total_questions", "correct_answers", "time_taken", "completed_at", "questions_attempted", "updated_at").
		Updates(score).Error)
}

func applyScoreFilter(query *gorm.DB, filter repository.ScoreFilter) *gorm.DB {
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	return query
}

// ListByUser возвращает результаты пользователя, последние первыми
func (r *ScoreRepo) ListByUser(ctx context.Context, userID uint, filter repository.ScoreFilter) ([]entity.QuizScore, error) {
	query := r.db.WithContext(ctx).Preload("Location").Where("user_id = ?", userID)
	query = applyScoreFilter(query, filter)

	var scores []entity.QuizScore
	err := query.Order("completed_at DESC").Order("id DESC").Find(&scores).Error
	return scores, err
}

// Leaderboard возвращает лучшие результаты периода по локации
func (r *ScoreRepo) Leaderboard(ctx context.Context, locationID uint, month string, year int, limit int) ([]entity.QuizScore, error) {
	var scores []entity.QuizScore
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("location_id = ? AND month = ? AND year = ?", locationID, month, year).
		Order("score DESC").
		Order("time_taken ASC").
		Order("completed_at ASC").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}

// UserStats считает агрегаты по всем результатам пользователя.
// Для пользователя без попыток все значения нулевые.
func (r *ScoreRepo) UserStats(ctx context.Context, userID uint) (*repository.UserScoreStats, error) {
	var stats repository.UserScoreStats
	err := r.db.WithContext(ctx).Model(&entity.QuizScore{}).
		Select(`COUNT(*) AS total_quizzes,
			COALESCE(AVG(score), 0) AS average_score,
			COALESCE(MAX(score), 0) AS highest_score,
			COALESCE(SUM(correct_answers), 0) AS total_correct_answers,
			COALESCE(SUM(total_questions), 0) AS total_questions`).
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListAll возвращает все результаты для админки, последние первыми
func (r *ScoreRepo) ListAll(ctx context.Context, filter repository.ScoreFilter) ([]entity.QuizScore, error) {
	query := applyScoreFilter(r.db.WithContext(ctx).Preload("User").Preload("Location"), filter)

	var scores []entity.QuizScore
	err := query.Order("completed_at DESC").Order("id DESC").Find(&scores).Error
	return scores, err
}

// Summary возвращает количество попыток и средний балл
func (r *ScoreRepo) Summary(ctx context.Context) (*repository.ScoreSummary, error) {
	var summary repository.ScoreSummary
	err := r.db.WithContext(ctx).Model(&entity.QuizScore{}).
		Select("COUNT(*) AS total_attempts, COALESCE(AVG(score), 0) AS average_score").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// CountInRange считает результаты со счетом в диапазоне [min, max]
func (r *ScoreRepo) CountInRange(ctx context.Context, min, max int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.QuizScore{}).
		Where("score >= ? AND score <= ?", min, max).
		Count(&count).Error
	return count, err
}

// AttemptsByLocation группирует попытки по локациям, самые популярные первыми
func (r *ScoreRepo) AttemptsByLocation(ctx context.Context) ([]repository.LocationAttempts, error) {
	var rows []repository.LocationAttempts
	err := r.db.WithContext(ctx).Table("quiz_scores").
		Select("quiz_scores.location_id AS location_id, COALESCE(locations.location, '') AS location, COUNT(*) AS attempts").
		Joins("LEFT JOIN locations ON locations.id = quiz_scores.location_id").
		Group("quiz_scores.location_id, locations.location").
		Order("attempts DESC").
		Order("location_id ASC").
		Scan(&rows).Error
	return rows, err
}

// MonthlyAttempts группирует попытки года по месяцам
func (r *ScoreRepo) MonthlyAttempts(ctx context.Context, year int) ([]repository.MonthlyAttempts, error) {
	var rows []repository.MonthlyAttempts
	err := r.db.WithContext(ctx).Model(&entity.QuizScore{}).
		Select("month, COUNT(*) AS attempts, COALESCE(AVG(score), 0) AS average_score").
		Where("year = ?", year).
		Group("month").
		Scan(&rows).Error
	return rows, err
}
