package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/client"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var (
		email      string
		password   string
		locationID uint
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected *uint
			if locationID != 0 {
				selected = &locationID
			}

			s, err := client.New(opts.serverURL).Login(cmd.Context(), email, password, selected)
			if err != nil {
				return err
			}
			if err := client.SaveSession(opts.sessionPath, s); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", s.User.Email, s.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().UintVar(&locationID, "location", 0, "location to play in")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ClearSession(opts.sessionPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// requireCapability загружает сессию и проверяет, что действие разрешено
func requireCapability(opts *rootOptions, c client.Capability) (*client.Session, *client.Client, error) {
	s, api, err := opts.session()
	if err != nil {
		if errors.Is(err, client.ErrNoSession) {
			return nil, nil, fmt.Errorf("%w: run quizctl login first", err)
		}
		return nil, nil, err
	}
	if !s.Can(c) {
		return nil, nil, fmt.Errorf("%s is not allowed to %s", s.User.Email, c)
	}
	return s, api, nil
}
