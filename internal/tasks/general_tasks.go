package tasks

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
)

const LogInfoTaskID = "log_info"

// LogInfoTask writes its "message" argument to the log. It is used to check
// that the worker is alive.
type LogInfoTask struct {
	log *zap.Logger
}

func NewLogInfoTask(log *zap.Logger) *LogInfoTask {
	return &LogInfoTask{log: log}
}

// HandleExecution handles logging information
func (t *LogInfoTask) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	message, ok := task.Arguments["message"].(string)
	if !ok {
		message = "No message provided"
	}
	t.log.Info("log_info task", zap.Uint("task_id", task.ID), zap.String("message", message))

	return map[string]interface{}{
		"status":            "success",
		"message":           message,
		"max_attempts_info": task.MaxAttempt,
	}, nil
}
