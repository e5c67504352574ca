// Package cli - команды quizctl: обслуживание базы и терминальный клиент викторины
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/client"
	"github.com/yourusername/quiz-api/internal/config"
)

const defaultServerURL = "http://localhost:5000"

type rootOptions struct {
	configPath  string
	serverURL   string
	sessionPath string
}

// NewRootCmd собирает дерево команд quizctl
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	envServer := os.Getenv("QUIZ_API_URL")
	if envServer == "" {
		envServer = defaultServerURL
	}
	envSession := os.Getenv("QUIZCTL_SESSION")
	if envSession == "" {
		if p, err := client.DefaultSessionPath(); err == nil {
			envSession = p
		} else {
			envSession = ".quizctl-session.json"
		}
	}

	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Quiz API operator and player console",
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.Path(), "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", envServer, "quiz API base URL")
	cmd.PersistentFlags().StringVar(&opts.sessionPath, "session", envSession, "session file")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newLogoutCmd(opts))
	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(newLocationCmd(opts))
	cmd.AddCommand(newQuestionCmd(opts))
	cmd.AddCommand(newScoresCmd(opts))
	return cmd
}

// session загружает сохраненную сессию и клиента с ее токеном
func (o *rootOptions) session() (*client.Session, *client.Client, error) {
	s, err := client.LoadSession(o.sessionPath)
	if err != nil {
		return nil, nil, err
	}
	return s, client.New(o.serverURL).WithSession(s), nil
}

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
	headColor = color.New(color.FgCyan, color.Bold)
)
