package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	config "task-manager.com/task-manager/internal/configs"
	"task-manager.com/task-manager/internal/http/validators"
	model "task-manager.com/task-manager/internal/models"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/services"
)

var tasksFlags struct {
	email    string
	category string
	search   string
	sort     string
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print a user's task view",
	Long:  "Prints the active and completed tasks of a user, filtered and ordered the same way the API does",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := validators.ParseViewQuery(tasksFlags.category, tasksFlags.search, tasksFlags.sort)
		if err != nil {
			return err
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		user, err := repository.NewUserRepository(database).FindByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(tasksFlags.email)))
		if err != nil {
			return err
		}

		taskService := services.NewTaskService(
			repository.NewTaskRepository(database),
			repository.NewPreferencesRepository(database),
			nil,
		)

		result, err := taskService.View(cmd.Context(), user.ID, params)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d tasks (category=%s, sort=%s)\n", result.Count, result.Category, result.Sort)
		printTasks(out, "Active", result.Active)
		printTasks(out, "Completed", result.Completed)
		return nil
	},
}

func printTasks(out io.Writer, heading string, tasks []model.Task) {
	fmt.Fprintf(out, "\n%s (%d)\n", heading, len(tasks))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, t := range tasks {
		pin := ""
		if t.Pinned {
			pin = "*"
		}
		due := "-"
		if t.HasDate() {
			due = t.Date.UTC().Format(model.DateLayout)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", pin, t.Title, t.Category, t.Priority, due)
	}
	w.Flush()
}

func init() {
	tasksCmd.Flags().StringVar(&tasksFlags.email, "email", "", "email of the user whose tasks to print")
	tasksCmd.Flags().StringVar(&tasksFlags.category, "category", "", "all, work or personal")
	tasksCmd.Flags().StringVar(&tasksFlags.search, "search", "", "case-insensitive text to match")
	tasksCmd.Flags().StringVar(&tasksFlags.sort, "sort", "", "priority, date or title (default: the user's preference)")
	_ = tasksCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(tasksCmd)
}
