package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/client"
	"github.com/yourusername/quiz-api/internal/quizsession"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		locationID uint
		timeLimit  int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take this month's quiz for your location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, api, err := requireCapability(opts, client.CapPlay)
			if err != nil {
				return err
			}
			if locationID == 0 && s.SelectedLocation != nil {
				locationID = *s.SelectedLocation
			}
			if locationID == 0 {
				return errors.New("no location selected: pass --location or log in with --location")
			}

			month, year := client.CurrentPeriod(time.Now())
			bridge := client.NewQuizBridge(api)
			quiz := quizsession.New(bridge, locationID, month, year, quizsession.WithTimeLimit(timeLimit))
			return playQuiz(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), quiz, bridge, time.Second)
		},
	}
	cmd.Flags().UintVar(&locationID, "location", 0, "location id, defaults to the one chosen at login")
	cmd.Flags().IntVar(&timeLimit, "time-limit", quizsession.DefaultTimeLimit, "time budget in seconds")
	return cmd
}

// playQuiz проводит попытку в терминале: вопрос, ввод номера варианта, переход дальше
func playQuiz(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	quiz *quizsession.Session,
	bridge *client.QuizBridge,
	tick time.Duration,
) error {
	if err := quiz.Load(ctx, bridge); err != nil {
		return err
	}
	if quiz.State() == quizsession.StateEmpty {
		warnColor.Fprintln(out, "No questions available for this month yet")
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timerErr := make(chan error, 1)
	go func() { timerErr <- quiz.Run(runCtx, tick) }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-runCtx.Done():
				return
			}
		}
	}()

	printQuestion(out, quiz)
	for done := false; !done; {
		select {
		case <-quiz.Done():
			done = true
		case err := <-timerErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			done = true
		case line, ok := <-lines:
			if !ok {
				// Ввод закончился до отправки: ничего не сохраняем
				cancel()
				return errors.New("input closed before the quiz was finished")
			}
			submitted, err := answer(ctx, quiz, line)
			if err != nil {
				if errors.Is(err, quizsession.ErrNoSelection) || errors.Is(err, quizsession.ErrInvalidOption) || errors.Is(err, strconv.ErrSyntax) {
					warnColor.Fprintln(out, "Enter the number of one of the options")
					continue
				}
				if errors.Is(err, quizsession.ErrNotInProgress) || errors.Is(err, quizsession.ErrAlreadySubmitted) {
					continue
				}
				return err
			}
			if submitted {
				done = true
				continue
			}
			printQuestion(out, quiz)
		}
	}
	cancel()

	result, ok := quiz.Result()
	if !ok {
		return errors.New("quiz was not submitted")
	}
	if result.TimedOut {
		warnColor.Fprintln(out, "Time is up, your answers were submitted")
	}
	headColor.Fprintf(out, "Score: %d%% (%d/%d correct) in %s\n",
		result.Score, result.CorrectAnswers, result.TotalQuestions, time.Duration(result.TimeTaken)*time.Second)
	if bridge.LastSave != nil && bridge.LastSave.IsNewHighScore {
		okColor.Fprintln(out, "New personal best for this month!")
	} else {
		fmt.Fprintln(out, "Your best score for this month is unchanged")
	}
	return nil
}

func answer(ctx context.Context, quiz *quizsession.Session, line string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return false, strconv.ErrSyntax
	}
	if err := quiz.Select(n - 1); err != nil {
		return false, err
	}
	return quiz.Next(ctx)
}

func printQuestion(out io.Writer, quiz *quizsession.Session) {
	idx, q, ok := quiz.Current()
	if !ok {
		return
	}
	remaining := time.Duration(quiz.Remaining()) * time.Second
	headColor.Fprintf(out, "\nQuestion %d of %d  (%s left)\n", idx+1, quiz.Total(), remaining)
	fmt.Fprintln(out, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(out, "> ")
}
