package client

import (
	"context"
	"time"

	"github.com/yourusername/quiz-api/internal/quizsession"
)

// QuizBridge связывает quizsession с API: загружает вопросы и сохраняет результат
type QuizBridge struct {
	client *Client
	// LastSave - ответ сервера на последнее сохранение
	LastSave *SaveResult
}

// NewQuizBridge создает мост для авторизованного клиента
func NewQuizBridge(c *Client) *QuizBridge {
	return &QuizBridge{client: c}
}

// Questions реализует quizsession.Source
func (b *QuizBridge) Questions(ctx context.Context, locationID uint, month string, year int) ([]quizsession.Question, error) {
	questions, err := b.client.Questions(ctx, locationID, month, year)
	if err != nil {
		return nil, err
	}
	out := make([]quizsession.Question, 0, len(questions))
	for _, q := range questions {
		out = append(out, quizsession.Question{
			ID:            q.ID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out, nil
}

// Submit реализует quizsession.Submitter через SaveScore
func (b *QuizBridge) Submit(ctx context.Context, result quizsession.Result) error {
	answers := make([]Answer, 0, len(result.Answers))
	for _, a := range result.Answers {
		answers = append(answers, Answer{Question: a.QuestionID, UserAnswer: a.UserAnswer, IsCorrect: a.IsCorrect})
	}

	saved, err := b.client.SaveScore(ctx, ScoreSubmission{
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		Month:          result.Month,
		Year:           result.Year,
		LocationID:     result.LocationID,
		TimeTaken:      result.TimeTaken,
		Answers:        answers,
	})
	if err != nil {
		return err
	}
	b.LastSave = saved
	return nil
}

// CurrentPeriod - месяц и год, за которые играется викторина
func CurrentPeriod(now time.Time) (string, int) {
	return now.Month().String(), now.Year()
}
