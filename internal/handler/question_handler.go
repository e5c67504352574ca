package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionHandler обрабатывает CRUD вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func questionInput(req dto.QuestionRequest) service.QuestionInput {
	return service.QuestionInput{
		Text:          req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		LocationID:    req.Location,
		Month:         req.Month,
		Year:          req.Year,
	}
}

// queryUint читает необязательный числовой query-параметр
func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.ErrValidation
	}
	return uint(v), nil
}

// queryInt читает необязательный целый query-параметр
func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ErrValidation
	}
	return v, nil
}

// CreateQuestion обрабатывает POST /api/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), questionInput(req))
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// ListQuestions обрабатывает GET /api/questions?location&month&year
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	locationID, err := queryUint(c, "location")
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}

	questions, err := h.questionService.List(c.Request.Context(), service.QuestionQuery{
		LocationID: locationID,
		Month:      c.Query("month"),
		Year:       year,
	})
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuestion обрабатывает GET /api/questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	question, err := h.questionService.Get(c.Request.Context(), middleware.UintFromContext(c, "questionID"))
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// UpdateQuestion обрабатывает PUT /api/questions/:id
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), middleware.UintFromContext(c, "questionID"), questionInput(req))
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion обрабатывает DELETE /api/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.questionService.Delete(c.Request.Context(), middleware.UintFromContext(c, "questionID")); err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
