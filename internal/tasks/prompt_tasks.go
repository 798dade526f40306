package tasks

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
)

const RotateFeaturedPromptTaskID = "rotate_featured_prompt"

// WeeklyRotation features a new prompt every Monday morning.
const WeeklyRotation = "FREQ=WEEKLY;BYDAY=MO;BYHOUR=9;BYMINUTE=0;BYSECOND=0"

// RotateFeaturedPromptTask moves the featured flag to the active prompt that
// was featured least recently. Prompts never featured go first.
type RotateFeaturedPromptTask struct {
	log *zap.Logger
	now func() time.Time
}

func NewRotateFeaturedPromptTask(log *zap.Logger) *RotateFeaturedPromptTask {
	return &RotateFeaturedPromptTask{log: log, now: time.Now}
}

// CreateRotateFeaturedPromptTask builds the recurring rotation starting at
// first.
func CreateRotateFeaturedPromptTask(rule string, first time.Time) (*models.ScheduledTask, error) {
	if rule == "" {
		rule = WeeklyRotation
	}
	return BuildScheduledTask(RotateFeaturedPromptTaskID, map[string]interface{}{}, first, &rule, models.ScheduledTaskTypeRecurring, 1)
}

func (t *RotateFeaturedPromptTask) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var next models.Prompt
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("is_active = ? AND featured = ?", true, false).
			Order("featured_at ASC NULLS FIRST, id").
			First(&next).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Prompt{}).Where("featured = ?", true).Update("featured", false).Error; err != nil {
			return err
		}

		now := t.now()
		return tx.Model(&next).Updates(map[string]interface{}{
			"featured":    true,
			"featured_at": &now,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t.log.Info("no prompt to feature")
		return map[string]interface{}{"status": "skipped", "reason": "no_candidate"}, nil
	}
	if err != nil {
		return nil, err
	}

	t.log.Info("featured prompt rotated", zap.Uint("prompt_id", next.ID))
	return map[string]interface{}{
		"status":    "success",
		"prompt_id": next.ID,
	}, nil
}
