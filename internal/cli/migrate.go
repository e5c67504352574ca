package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/pkg/database"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.PersistentFlags().StringVar(&source, "source", database.DefaultMigrationsSource, "migrations source URL")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := openDB(opts.configPath)
			if err != nil {
				return err
			}
			defer closeDB()
			return database.MigrateDB(db, source)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force <version>",
		Short: "Set the migration version and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("version must be a number: %w", err)
			}
			db, closeDB, err := openDB(opts.configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := database.ForceMigrationVersion(db, source, version); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Migration version set to %d, dirty flag cleared\n", version)
			return nil
		},
	})
	return cmd
}

func openDB(configPath string) (*gorm.DB, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), false)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
