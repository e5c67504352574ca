package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendAccountCreated(ctx context.Context, toEmail string, role entity.Role) error
}

// NoopEmailService используется, когда отправка писем выключена
type NoopEmailService struct{}

func (s *NoopEmailService) SendAccountCreated(ctx context.Context, toEmail string, role entity.Role) error {
	log.Printf("[EmailService] noop account created to=%s role=%s", toEmail, role)
	return nil
}

// resendSender - часть клиента Resend, которую использует сервис
type resendSender interface {
	SendWithOptions(ctx context.Context, params *resend.SendEmailRequest, options *resend.SendEmailOptions) (*resend.SendEmailResponse, error)
}

// ResendEmailService отправляет письма через Resend REST API
type ResendEmailService struct {
	from   string
	appURL string
	sender resendSender
}

func NewResendEmailService(apiKey, from, appURL string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	client := resend.NewClient(apiKey)
	return &ResendEmailService{
		from:   from,
		appURL: appURL,
		sender: client.Emails,
	}, nil
}

func (s *ResendEmailService) SendAccountCreated(ctx context.Context, toEmail string, role entity.Role) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	text := fmt.Sprintf("An administrator created a %s account for %s.", role, toEmail)
	html := fmt.Sprintf("<p>An administrator created a <strong>%s</strong> account for %s.</p>", role, toEmail)
	if s.appURL != "" {
		text += fmt.Sprintf(" Sign in at %s to take this month's quiz.", s.appURL)
		html += fmt.Sprintf(`<p><a href="%s">Sign in</a> to take this month's quiz.</p>`, s.appURL)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Your quiz account is ready",
		Text:    text,
		Html:    html,
	}
	// Повторная отправка с тем же ключом не создаст дубликат письма
	options := &resend.SendEmailOptions{IdempotencyKey: "account-created/" + strings.ToLower(toEmail)}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.sender.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
