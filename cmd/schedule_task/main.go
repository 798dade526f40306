package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/config"
	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/services"
	"galeri_app_echo/internal/tasks"
)

const dueLayout = "2006-01-02 15:04"

func main() {
	rootCmd := &cobra.Command{
		Use:           "schedule_task",
		Short:         "Queue scheduled tasks for the Galeri worker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(createCmd(), rotateFeaturedCmd(), listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// createOptions mirrors the flags of the create command.
type createOptions struct {
	taskName   string
	arguments  string
	due        string
	taskType   string
	recurring  string
	maxAttempt int
}

func createCmd() *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a scheduled task",
		Example: `  schedule_task create --task_name log_info --arguments '{"message":"hi"}' --due "2026-01-05 09:00"
  schedule_task create --task_name notify_submission --arguments '{"submission_id":12}' --due now`,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := buildTask(opts, registeredTasks(), time.Now())
			if err != nil {
				return err
			}
			return save(task)
		},
	}

	cmd.Flags().StringVar(&opts.taskName, "task_name", "", "Name of the task (mandatory)")
	cmd.Flags().StringVar(&opts.arguments, "arguments", "{}", "JSON arguments for the task")
	cmd.Flags().StringVar(&opts.due, "due", "", `Due date (mandatory, "now", RFC3339 or 2006-01-02 15:04 local time)`)
	cmd.Flags().StringVar(&opts.taskType, "tasktype", string(models.ScheduledTaskTypeOneTime), "Task type: onetime or recurring")
	cmd.Flags().StringVar(&opts.recurring, "recurring", "", "RFC 5545 recurrence rule for recurring tasks")
	cmd.Flags().IntVar(&opts.maxAttempt, "max_attempt", 3, "Max attempts per run")
	_ = cmd.MarkFlagRequired("task_name")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func rotateFeaturedCmd() *cobra.Command {
	var rule, first string

	cmd := &cobra.Command{
		Use:   "rotate-featured",
		Short: "Schedule the recurring featured prompt rotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDue(first, time.Now())
			if err != nil {
				return err
			}
			if _, err := rrule.StrToRRule(rule); err != nil {
				return fmt.Errorf("invalid recurrence rule: %w", err)
			}
			task, err := tasks.CreateRotateFeaturedPromptTask(rule, start)
			if err != nil {
				return err
			}
			return save(task)
		},
	}

	cmd.Flags().StringVar(&rule, "rule", tasks.WeeklyRotation, "RFC 5545 recurrence rule")
	cmd.Flags().StringVar(&first, "first", "now", "First run")

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List task names the worker can run",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range registeredTasks().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

// registeredTasks returns a registry holding every task the worker defines.
// Handlers are never run from here.
func registeredTasks() *tasks.Registry {
	r := tasks.NewRegistry()
	tasks.DefineTasks(r, tasks.Deps{Log: zap.NewNop()})
	return r
}

func buildTask(opts createOptions, registry *tasks.Registry, now time.Time) (*models.ScheduledTask, error) {
	if _, ok := registry.Get(opts.taskName); !ok {
		return nil, fmt.Errorf("unknown task %q, expected one of %v", opts.taskName, registry.Names())
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(opts.arguments), &args); err != nil {
		return nil, fmt.Errorf("invalid JSON arguments: %w", err)
	}

	due, err := parseDue(opts.due, now)
	if err != nil {
		return nil, err
	}

	if opts.maxAttempt < 1 {
		return nil, fmt.Errorf("max_attempt must be at least 1, got %d", opts.maxAttempt)
	}

	var recurring *string
	taskType := models.ScheduledTaskType(opts.taskType)
	switch taskType {
	case models.ScheduledTaskTypeOneTime:
		if opts.recurring != "" {
			return nil, fmt.Errorf("--recurring needs --tasktype %s", models.ScheduledTaskTypeRecurring)
		}
	case models.ScheduledTaskTypeRecurring:
		if _, err := rrule.StrToRRule(opts.recurring); err != nil {
			return nil, fmt.Errorf("invalid recurrence rule: %w", err)
		}
		recurring = &opts.recurring
	default:
		return nil, fmt.Errorf("unknown task type %q", opts.taskType)
	}

	return tasks.BuildScheduledTask(opts.taskName, args, due, recurring, taskType, opts.maxAttempt)
}

func parseDue(value string, now time.Time) (time.Time, error) {
	if value == "now" {
		return now, nil
	}
	if due, err := time.Parse(time.RFC3339, value); err == nil {
		return due, nil
	}
	due, err := time.ParseInLocation(dueLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, use now, RFC3339 or %s", value, dueLayout)
	}
	return due, nil
}

func save(task *models.ScheduledTask) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	if err := db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due.Format(time.RFC3339), task.TaskType)
	return nil
}

func openDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return services.InitDB(cfg.DatabaseURL, zap.NewNop(), false)
}
