package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// LeaderboardSize - сколько лучших результатов показывает месячный лидерборд
const LeaderboardSize = 10

// ScoreService сохраняет результаты и строит рейтинги.
// На период (пользователь, локация, месяц, год) хранится одна запись, счет только растет.
type ScoreService struct {
	scoreRepo      repository.ScoreRepository
	locationRepo   repository.LocationRepository
	cacheRepo      repository.CacheRepository
	leaderboardTTL time.Duration
	now            func() time.Time
}

// SubmitInput - результат завершенной попытки
type SubmitInput struct {
	LocationID     uint
	Month          string
	Year           int
	Score          int
	TotalQuestions int
	CorrectAnswers int
	TimeTaken      int
	Answers        entity.AnswerLog
}

// SubmitResult - сохраненная запись периода и признак нового рекорда
type SubmitResult struct {
	Score          *entity.QuizScore
	IsNewHighScore bool
	Created        bool
}

// NewScoreService создает сервис результатов. cacheRepo может быть nil.
func NewScoreService(
	scoreRepo repository.ScoreRepository,
	locationRepo repository.LocationRepository,
	cacheRepo repository.CacheRepository,
	leaderboardTTL time.Duration,
) *ScoreService {
	return &ScoreService{
		scoreRepo:      scoreRepo,
		locationRepo:   locationRepo,
		cacheRepo:      cacheRepo,
		leaderboardTTL: leaderboardTTL,
		now:            time.Now,
	}
}

func leaderboardCacheKey(locationID uint, month string, year int) string {
	return fmt.Sprintf("leaderboard:%d:%s:%d", locationID, month, year)
}

func (s *ScoreService) validateSubmit(userID uint, in SubmitInput) (SubmitInput, error) {
	if userID == 0 {
		return in, fmt.Errorf("%w: user identity is required", apperrors.ErrUnauthorized)
	}
	if in.LocationID == 0 {
		return in, fmt.Errorf("%w: location is required", apperrors.ErrValidation)
	}
	month, ok := entity.ParseMonth(in.Month)
	if !ok {
		return in, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, in.Month)
	}
	in.Month = month
	if in.Year <= 0 {
		return in, fmt.Errorf("%w: year must be positive", apperrors.ErrValidation)
	}
	if in.Score < entity.MinScore || in.Score > entity.MaxScore {
		return in, fmt.Errorf("%w: score must be between %d and %d", apperrors.ErrValidation, entity.MinScore, entity.MaxScore)
	}
	if in.TotalQuestions < 0 || in.CorrectAnswers < 0 || in.TimeTaken < 0 {
		return in, fmt.Errorf("%w: counters must not be negative", apperrors.ErrValidation)
	}
	if in.TotalQuestions > 0 && in.CorrectAnswers > in.TotalQuestions {
		return in, fmt.Errorf("%w: correct answers exceed total questions", apperrors.ErrValidation)
	}
	return in, nil
}

// SubmitScore сохраняет попытку:
// нет записи периода - создается (рекорд); новый счет строго выше - запись перезаписывается (рекорд);
// иначе запись не меняется.
func (s *ScoreService) SubmitScore(ctx context.Context, userID uint, in SubmitInput) (*SubmitResult, error) {
	in, err := s.validateSubmit(userID, in)
	if err != nil {
		return nil, err
	}

	if _, err := s.locationRepo.GetByID(ctx, in.LocationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: location %d not found", apperrors.ErrNotFound, in.LocationID)
		}
		return nil, err
	}

	attempt := &entity.QuizScore{
		UserID:             userID,
		LocationID:         in.LocationID,
		Month:              in.Month,
		Year:               in.Year,
		Score:              in.Score,
		TotalQuestions:     in.TotalQuestions,
		CorrectAnswers:     in.CorrectAnswers,
		TimeTaken:          in.TimeTaken,
		CompletedAt:        s.now(),
		QuestionsAttempted: in.Answers,
	}
	if attempt.QuestionsAttempted == nil {
		attempt.QuestionsAttempted = entity.AnswerLog{}
	}

	existing, err := s.scoreRepo.GetByPeriod(ctx, userID, in.LocationID, in.Month, in.Year)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		createErr := s.scoreRepo.Create(ctx, attempt)
		if createErr == nil {
			log.Printf("[ScoreService] Новый результат: пользователь ID=%d, локация %d, %s %d, счет %d",
				userID, in.LocationID, in.Month, in.Year, in.Score)
			s.invalidateLeaderboard(ctx, attempt)
			return &SubmitResult{Score: attempt, IsNewHighScore: true, Created: true}, nil
		}
		if !errors.Is(createErr, apperrors.ErrConflict) {
			return nil, createErr
		}
		// Параллельная первая отправка уже создала запись периода
		log.Printf("[ScoreService] Гонка при создании результата пользователя ID=%d, перечитываем запись", userID)
		existing, err = s.scoreRepo.GetByPeriod(ctx, userID, in.LocationID, in.Month, in.Year)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if !existing.ApplyIfBetter(attempt) {
		return &SubmitResult{Score: existing, IsNewHighScore: false}, nil
	}
	if err := s.scoreRepo.Update(ctx, existing); err != nil {
		log.Printf("[ScoreService] Ошибка обновления результата ID=%d: %v", existing.ID, err)
		return nil, err
	}

	log.Printf("[ScoreService] Новый рекорд: пользователь ID=%d, локация %d, %s %d, счет %d",
		userID, in.LocationID, in.Month, in.Year, existing.Score)
	s.invalidateLeaderboard(ctx, existing)
	return &SubmitResult{Score: existing, IsNewHighScore: true}, nil
}

func (s *ScoreService) invalidateLeaderboard(ctx context.Context, score *entity.QuizScore) {
	if s.cacheRepo == nil {
		return
	}
	key := leaderboardCacheKey(score.LocationID, score.Month, score.Year)
	if err := s.cacheRepo.Delete(ctx, key); err != nil {
		log.Printf("[ScoreService] Не удалось сбросить кеш %s: %v", key, err)
	}
}

// parseFilter приводит месяц к каноническому названию
func parseFilter(year int, month string) (repository.ScoreFilter, error) {
	filter := repository.ScoreFilter{Year: year}
	if month != "" {
		canonical, ok := entity.ParseMonth(month)
		if !ok {
			return filter, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, month)
		}
		filter.Month = canonical
	}
	return filter, nil
}

// GetUserScores возвращает результаты пользователя, последние первыми.
// year == 0 и пустой month означают "за все время".
func (s *ScoreService) GetUserScores(ctx context.Context, userID uint, year int, month string) ([]entity.QuizScore, error) {
	filter, err := parseFilter(year, month)
	if err != nil {
		return nil, err
	}
	return s.scoreRepo.ListByUser(ctx, userID, filter)
}

// GetMonthlyLeaderboard возвращает топ-10 периода: счет по убыванию, затем время по возрастанию.
// Ошибки кеша не мешают чтению из базы.
func (s *ScoreService) GetMonthlyLeaderboard(ctx context.Context, locationID uint, month string, year int) ([]dto.LeaderboardEntry, error) {
	if locationID == 0 {
		return nil, fmt.Errorf("%w: locationId is required", apperrors.ErrValidation)
	}
	canonical, ok := entity.ParseMonth(month)
	if !ok {
		return nil, fmt.Errorf("%w: invalid month %q", apperrors.ErrValidation, month)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive", apperrors.ErrValidation)
	}

	key := leaderboardCacheKey(locationID, canonical, year)
	if s.cacheRepo != nil {
		var cached []dto.LeaderboardEntry
		err := s.cacheRepo.GetJSON(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[ScoreService] Ошибка чтения кеша %s: %v", key, err)
		}
	}

	scores, err := s.scoreRepo.Leaderboard(ctx, locationID, canonical, year, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(scores))
	for i, sc := range scores {
		entry := dto.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         sc.UserID,
			Email:          unknownUser,
			Score:          sc.Score,
			TimeTaken:      sc.TimeTaken,
			CorrectAnswers: sc.CorrectAnswers,
			TotalQuestions: sc.TotalQuestions,
			CompletedAt:    sc.CompletedAt,
		}
		if sc.User != nil {
			entry.Email = sc.User.Email
		}
		entries = append(entries, entry)
	}

	if s.cacheRepo != nil && s.leaderboardTTL > 0 {
		if err := s.cacheRepo.SetJSON(ctx, key, entries, s.leaderboardTTL); err != nil {
			log.Printf("[ScoreService] Ошибка записи кеша %s: %v", key, err)
		}
	}
	return entries, nil
}

// GetUserStats возвращает агрегаты пользователя, без попыток - нули
func (s *ScoreService) GetUserStats(ctx context.Context, userID uint) (*repository.UserScoreStats, error) {
	stats, err := s.scoreRepo.UserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &repository.UserScoreStats{}
	}
	return stats, nil
}

// unknownUser подставляется вместо email удаленного пользователя
const unknownUser = "Unknown User"

// GetAllScores возвращает все результаты в виде строк таблицы админки
func (s *ScoreService) GetAllScores(ctx context.Context, year int, month string) ([]dto.ScoreRow, error) {
	filter, err := parseFilter(year, month)
	if err != nil {
		return nil, err
	}
	scores, err := s.scoreRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.ScoreRow, 0, len(scores))
	for _, sc := range scores {
		row := dto.ScoreRow{
			ID:     sc.ID,
			Email:  unknownUser,
			Quiz:   fmt.Sprintf("%s %d", sc.Month, sc.Year),
			Score:  sc.Score,
			Date:   sc.CompletedAt.Format("2006-01-02"),
			Status: entity.ScoreStatus(sc.Score),
		}
		if sc.User != nil {
			row.Email = sc.User.Email
		}
		if sc.Location != nil {
			row.Location = sc.Location.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}
