package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/client"
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

func newScoresCmd(opts *rootOptions) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show your scores and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := requireCapability(opts, client.CapPlay)
			if err != nil {
				return err
			}
			scores, err := api.UserScores(cmd.Context(), year)
			if err != nil {
				return err
			}
			stats, err := api.UserStats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			headColor.Fprintln(out, "Your results")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tLOCATION\tSCORE\tCORRECT\tTIME")
			for _, s := range scores {
				location := ""
				if s.Location != nil {
					location = s.Location.Name
				}
				fmt.Fprintf(w, "%s %d\t%s\t%d%%\t%d/%d\t%s\n",
					s.Month, s.Year, location, s.Score, s.CorrectAnswers, s.TotalQuestions,
					time.Duration(s.TimeTaken)*time.Second)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Quizzes: %d  Average: %.1f  Best: %d\n", stats.TotalQuizzes, stats.AverageScore, stats.HighestScore)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "only this year")

	cmd.AddCommand(newLeaderboardCmd(opts))
	return cmd
}

func newLeaderboardCmd(opts *rootOptions) *cobra.Command {
	var (
		locationID uint
		month      string
		year       int
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the monthly top 10",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			curMonth, curYear := client.CurrentPeriod(time.Now())
			if month == "" {
				month = curMonth
			} else if m, ok := entity.ParseMonth(month); ok {
				month = m
			} else {
				return fmt.Errorf("unknown month %q", month)
			}
			if year == 0 {
				year = curYear
			}

			entries, err := client.New(opts.serverURL).Leaderboard(cmd.Context(), locationID, month, year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			headColor.Fprintf(out, "Leaderboard %s %d\n", month, year)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tPLAYER\tSCORE\tTIME")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%d%%\t%s\n", e.Rank, e.Email, e.Score, time.Duration(e.TimeTaken)*time.Second)
			}
			return w.Flush()
		},
	}
	cmd.Flags().UintVar(&locationID, "location", 0, "location id")
	cmd.Flags().StringVar(&month, "month", "", "month name or number, current month when omitted")
	cmd.Flags().IntVar(&year, "year", 0, "year, current year when omitted")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}
