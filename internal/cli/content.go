package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/client"
)

func newLocationCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage locations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, err := client.New(opts.serverURL).Locations(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLOCATION")
			for _, l := range locations {
				fmt.Fprintf(w, "%d\t%s\n", l.ID, l.Name)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a location (admin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := requireCapability(opts, client.CapManageContent)
			if err != nil {
				return err
			}
			location, err := api.CreateLocation(cmd.Context(), client.LocationDraft{Name: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Location %q created with id %d\n", location.Name, location.ID)
			return nil
		},
	})
	return cmd
}

func newQuestionCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Manage questions",
	}

	var draft client.QuestionDraft
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a question (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := requireCapability(opts, client.CapManageContent)
			if err != nil {
				return err
			}
			question, err := api.CreateQuestion(cmd.Context(), draft)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Question %d created for %s %d\n", question.ID, question.Month, question.Year)
			return nil
		},
	}
	add.Flags().StringVar(&draft.Text, "text", "", "question text")
	add.Flags().StringArrayVar(&draft.Options, "option", nil, "answer option, repeat four times")
	add.Flags().IntVar(&draft.CorrectAnswer, "correct", 0, "index of the correct option (0-3)")
	add.Flags().UintVar(&draft.LocationID, "location", 0, "location id")
	add.Flags().StringVar(&draft.Month, "month", "", "month name or number")
	add.Flags().IntVar(&draft.Year, "year", 0, "year, current year when omitted")
	_ = add.MarkFlagRequired("text")
	_ = add.MarkFlagRequired("location")
	_ = add.MarkFlagRequired("month")

	cmd.AddCommand(add)
	return cmd
}
