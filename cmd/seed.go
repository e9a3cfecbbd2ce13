package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	config "task-manager.com/task-manager/internal/configs"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/seed"
	"task-manager.com/task-manager/internal/services"
	"task-manager.com/task-manager/internal/sessions"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users and tasks from a YAML fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		fixture, err := seed.Load(seedFile)
		if err != nil {
			return err
		}

		userRepo := repository.NewUserRepository(database)
		prefsRepo := repository.NewPreferencesRepository(database)

		// Seeding never signs anyone out, so revocations need no shared store.
		authService := services.NewAuthService(
			userRepo,
			sessions.NewMemoryStore(),
			cfg.JWTSecret,
			time.Duration(cfg.JWTTTLHours)*time.Hour,
		)
		taskService := services.NewTaskService(repository.NewTaskRepository(database), prefsRepo, nil)

		sum, err := seed.Apply(cmd.Context(), fixture, authService, taskService)
		if err != nil {
			return err
		}

		log.Printf("seeded %d users and %d tasks, skipped %d existing users", sum.Users, sum.Tasks, sum.Skipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures/seed.yaml", "path to the YAML fixture")
	rootCmd.AddCommand(seedCmd)
}
