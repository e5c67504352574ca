package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
)

type seedUser struct {
	email    string
	password string
	role     entity.Role
}

var seedUsers = []seedUser{
	{"admin@quiz.com", "admin123", entity.RoleAdmin},
	{"user@quiz.com", "user123", entity.RoleUser},
}

var seedLocations = []string{"Maharashtra", "Goa", "Karnataka"}

var seedQuestions = []struct {
	text    string
	options []string
	correct int
}{
	{"What is the capital of Maharashtra?", []string{"Pune", "Mumbai", "Nagpur", "Nashik"}, 1},
	{"Which fort was built by Shivaji Maharaj at sea?", []string{"Raigad", "Sindhudurg", "Pratapgad", "Torna"}, 1},
	{"Which river is known as the Dakshin Ganga?", []string{"Krishna", "Tapi", "Godavari", "Bhima"}, 2},
	{"Which city is called the Orange City?", []string{"Nagpur", "Aurangabad", "Kolhapur", "Solapur"}, 0},
	{"Ajanta caves are located near which city?", []string{"Pune", "Aurangabad", "Nashik", "Satara"}, 1},
}

var seedScores = []struct {
	month string
	year  int
	score int
}{
	{"November", 2024, 85},
	{"October", 2024, 92},
}

// seeder заполняет базу демонстрационными данными; повторный запуск ничего не дублирует
type seeder struct {
	users     repository.UserRepository
	locations repository.LocationRepository
	questions repository.QuestionRepository
	scores    repository.ScoreRepository
	now       func() time.Time
}

func newSeeder(db *gorm.DB) *seeder {
	return &seeder{
		users:     pgRepo.NewUserRepo(db),
		locations: pgRepo.NewLocationRepo(db),
		questions: pgRepo.NewQuestionRepo(db),
		scores:    pgRepo.NewScoreRepo(db),
		now:       time.Now,
	}
}

func (s *seeder) run(ctx context.Context) error {
	users := make(map[string]*entity.User, len(seedUsers))
	for _, su := range seedUsers {
		user, err := s.ensureUser(ctx, su)
		if err != nil {
			return err
		}
		users[su.email] = user
	}

	var home *entity.Location
	for _, name := range seedLocations {
		location, err := s.ensureLocation(ctx, name)
		if err != nil {
			return err
		}
		if home == nil {
			home = location
		}
	}

	if err := s.ensureQuestions(ctx, home.ID); err != nil {
		return err
	}

	player := users["user@quiz.com"]
	for _, sc := range seedScores {
		if err := s.ensureScore(ctx, player.ID, home.ID, sc.month, sc.year, sc.score); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) ensureUser(ctx context.Context, su seedUser) (*entity.User, error) {
	user, err := s.users.GetByEmail(ctx, su.email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user = &entity.User{Email: su.email, Password: su.password, Role: su.role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("seed user %s: %w", su.email, err)
	}
	log.Printf("[Seed] Создан пользователь %s (%s)", su.email, su.role)
	return user, nil
}

func (s *seeder) ensureLocation(ctx context.Context, name string) (*entity.Location, error) {
	location, err := s.locations.GetByName(ctx, name)
	if err == nil {
		return location, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	location = &entity.Location{Name: name}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("seed location %s: %w", name, err)
	}
	log.Printf("[Seed] Создана локация %s", name)
	return location, nil
}

// ensureQuestions добавляет вопросы текущего месяца, если для периода их еще нет
func (s *seeder) ensureQuestions(ctx context.Context, locationID uint) error {
	now := s.now()
	month, year := now.Month().String(), now.Year()

	existing, err := s.questions.List(ctx, repository.QuestionFilter{LocationID: locationID, Month: month, Year: year})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, sq := range seedQuestions {
		q := &entity.Question{
			Text:          sq.text,
			Options:       entity.StringArray(sq.options),
			CorrectAnswer: sq.correct,
			LocationID:    locationID,
			Month:         month,
			Year:          year,
		}
		if err := s.questions.Create(ctx, q); err != nil {
			return fmt.Errorf("seed question: %w", err)
		}
	}
	log.Printf("[Seed] Добавлено %d вопросов за %s %d", len(seedQuestions), month, year)
	return nil
}

func (s *seeder) ensureScore(ctx context.Context, userID, locationID uint, month string, year, score int) error {
	_, err := s.scores.GetByPeriod(ctx, userID, locationID, month, year)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	total := len(seedQuestions)
	record := &entity.QuizScore{
		UserID:         userID,
		LocationID:     locationID,
		Month:          month,
		Year:           year,
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: score * total / 100,
		TimeTaken:      600,
		CompletedAt:    s.now(),
	}
	if err := s.scores.Create(ctx, record); err != nil {
		return fmt.Errorf("seed score %s %d: %w", month, year, err)
	}
	return nil
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo users, locations, questions and scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(opts.configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := newSeeder(db).run(cmd.Context()); err != nil {
				return err
			}
			okColor.Fprintln(cmd.OutOrStdout(), "Demo users and scores created")
			return nil
		},
	}
}
