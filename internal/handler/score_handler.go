package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// ScoreHandler обрабатывает сохранение результатов, рейтинги и выгрузку
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler создает новый обработчик результатов
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

func answerLog(answers []dto.AnswerDTO) entity.AnswerLog {
	entries := make(entity.AnswerLog, 0, len(answers))
	for _, a := range answers {
		entries = append(entries, entity.AnsweredQuestion{QuestionID: a.Question, UserAnswer: a.UserAnswer, IsCorrect: a.IsCorrect})
	}
	return entries
}

func (h *ScoreHandler) submit(c *gin.Context, score *int, in service.SubmitInput) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		handleError(c, "ScoreHandler", apperrors.ErrUnauthorized)
		return
	}
	if score == nil {
		handleError(c, "ScoreHandler", fmt.Errorf("%w: score is required", apperrors.ErrValidation))
		return
	}
	in.Score = *score

	result, err := h.scoreService.SubmitScore(c.Request.Context(), userID, in)
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}

	message := "Score not updated: previous score is higher or equal"
	status := http.StatusOK
	switch {
	case result.Created:
		message = "Quiz score saved successfully"
		status = http.StatusCreated
	case result.IsNewHighScore:
		message = "New high score saved"
	}
	c.JSON(status, dto.SaveScoreResponse{
		Message:        message,
		IsNewHighScore: result.IsNewHighScore,
		Score:          result.Score,
	})
}

// SaveQuiz обрабатывает POST /api/quiz/save
func (h *ScoreHandler) SaveQuiz(c *gin.Context) {
	var req dto.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.submit(c, req.Score, service.SubmitInput{
		LocationID:     req.Location,
		Month:          req.Month,
		Year:           req.Year,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
		TimeTaken:      req.TimeTaken,
		Answers:        answerLog(req.Answers),
	})
}

// SaveQuizScore обрабатывает POST /api/quiz-scores/save
func (h *ScoreHandler) SaveQuizScore(c *gin.Context) {
	var req dto.SaveQuizScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.submit(c, req.Score, service.SubmitInput{
		LocationID:     req.LocationID,
		Month:          req.Month,
		Year:           req.Year,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
		TimeTaken:      req.TimeTaken,
		Answers:        answerLog(req.Answers),
	})
}

// GetUserScores обрабатывает GET /api/quiz/scores и /api/quiz-scores/user-scores
func (h *ScoreHandler) GetUserScores(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		handleError(c, "ScoreHandler", apperrors.ErrUnauthorized)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}

	scores, err := h.scoreService.GetUserScores(c.Request.Context(), userID, year, c.Query("month"))
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

// GetLeaderboard обрабатывает GET /api/quiz-scores/leaderboard?locationId&month&year
func (h *ScoreHandler) GetLeaderboard(c *gin.Context) {
	locationID, err := queryUint(c, "locationId")
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}

	entries, err := h.scoreService.GetMonthlyLeaderboard(c.Request.Context(), locationID, c.Query("month"), year)
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetUserStats обрабатывает GET /api/quiz-scores/user-stats
func (h *ScoreHandler) GetUserStats(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		handleError(c, "ScoreHandler", apperrors.ErrUnauthorized)
		return
	}

	stats, err := h.scoreService.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAllScores обрабатывает GET /api/quiz (админка)
func (h *ScoreHandler) GetAllScores(c *gin.Context) {
	year, err := queryInt(c, "year")
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}

	rows, err := h.scoreService.GetAllScores(c.Request.Context(), year, c.Query("month"))
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportScores обрабатывает GET /api/quiz/export?format=csv|xlsx
func (h *ScoreHandler) ExportScores(c *gin.Context) {
	format, err := service.ParseExportFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		handleError(c, "ScoreHandler", err)
		return
	}

	// Заголовки до записи тела; ошибка после начала записи только логируется
	filename := fmt.Sprintf("quiz_scores_%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Status(http.StatusOK)

	if err := h.scoreService.ExportScores(c.Request.Context(), c.Writer, format, year, c.Query("month")); err != nil {
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			c.Writer.Header().Del("Content-Disposition")
			handleError(c, "ScoreHandler", err)
			return
		}
		log.Printf("[ScoreHandler] Ошибка выгрузки результатов: %v", err)
	}
}
