package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
)

// History statuses.
const (
	RunSuccess         = "success"
	RunFailure         = "failure"
	RunHandlerNotFound = "handler_not_found"
)

// Runner executes due scheduled tasks and records their history.
type Runner struct {
	db       *gorm.DB
	registry *Registry
	log      *zap.Logger
	now      func() time.Time
}

func NewRunner(db *gorm.DB, registry *Registry, log *zap.Logger) *Runner {
	return &Runner{db: db, registry: registry, log: log, now: time.Now}
}

// RunDue executes every active task whose due time has passed and returns
// how many it picked up.
func (r *Runner) RunDue(ctx context.Context) (int, error) {
	var pending []models.ScheduledTask
	err := r.db.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, r.now()).
		Order("due").
		Find(&pending).Error
	if err != nil {
		return 0, err
	}

	for i, task := range pending {
		if ctx.Err() != nil {
			return i, ctx.Err()
		}
		r.Execute(ctx, task)
	}
	return len(pending), nil
}

// Execute runs task, retrying up to MaxAttempt times in place. Every attempt
// is written to the history table.
func (r *Runner) Execute(ctx context.Context, task models.ScheduledTask) {
	log := r.log.With(zap.String("task", task.TaskName), zap.Uint("task_id", task.ID))
	db := r.db.WithContext(ctx)

	handler, found := r.registry.Get(task.TaskName)
	if !found {
		now := r.now()
		log.Warn("task handler not found, marking as failure")
		r.record(db, task, now, 0, RunHandlerNotFound, 1, map[string]interface{}{"error": "Handler not found"})
		r.update(db, task, map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		return
	}

	maxAttempt := task.MaxAttempt
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	for attempt := 1; ; attempt++ {
		start := r.now()
		result, err := handler(ctx, r.db, task)
		runtime := r.now().Sub(start)

		if err == nil {
			log.Info("task completed", zap.Int("attempt", attempt), zap.Duration("runtime", runtime))
			r.record(db, task, start, runtime, RunSuccess, attempt, result)
			r.update(db, task, task.Completion(start))
			return
		}

		log.Warn("task failed", zap.Int("attempt", attempt), zap.Error(err))
		r.record(db, task, start, runtime, RunFailure, attempt, map[string]interface{}{"error": err.Error()})

		if attempt >= maxAttempt || ctx.Err() != nil {
			r.update(db, task, map[string]interface{}{
				"status":   models.ScheduledTaskStatusFailure,
				"last_run": &start,
			})
			return
		}
	}
}

func (r *Runner) record(db *gorm.DB, task models.ScheduledTask, runAt time.Time, runtime time.Duration, status string, attempt int, result map[string]interface{}) {
	history := models.ScheduledTaskHistory{
		ScheduledTaskID: task.ID,
		TaskName:        task.TaskName,
		RunAt:           runAt,
		RuntimeMs:       int(runtime.Milliseconds()),
		Status:          status,
		AttemptNumber:   attempt,
		Arguments:       task.Arguments,
		Result:          result,
	}
	if err := db.Create(&history).Error; err != nil {
		r.log.Error("failed to record task history", zap.Uint("task_id", task.ID), zap.Error(err))
	}
}

func (r *Runner) update(db *gorm.DB, task models.ScheduledTask, updates map[string]interface{}) {
	if err := db.Model(&task).Updates(updates).Error; err != nil {
		r.log.Error("failed to update task", zap.Uint("task_id", task.ID), zap.Error(err))
	}
}
