package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
	"galeri_app_echo/internal/navigation"
	"galeri_app_echo/internal/services"
)

const NotifySubmissionTaskID = "notify_submission"

// Mailer sends plain-text e-mail. services.EmailService implements it.
type Mailer interface {
	SendEmail(to []string, subject, body string) error
}

// NotifySubmissionArgs defines the arguments for a notification task
type NotifySubmissionArgs struct {
	SubmissionID uint `json:"submission_id"`
}

// CreateNotifySubmissionTask builds the one-time task queued when a
// submission arrives.
func CreateNotifySubmissionTask(args NotifySubmissionArgs, due time.Time) (*models.ScheduledTask, error) {
	return BuildScheduledTask(NotifySubmissionTaskID, args, due, nil, models.ScheduledTaskTypeOneTime, 3)
}

// NotifySubmissionTask e-mails the curator of an exhibit about a new
// submission, unless they opted out.
type NotifySubmissionTask struct {
	log    *zap.Logger
	mailer Mailer
	table  *navigation.Table
	appURL string
}

func NewNotifySubmissionTask(deps Deps) *NotifySubmissionTask {
	return &NotifySubmissionTask{log: deps.Log, mailer: deps.Mailer, table: deps.Table, appURL: deps.AppURL}
}

func skipped(reason string) map[string]interface{} {
	return map[string]interface{}{"status": "skipped", "reason": reason}
}

// HandleExecution handles sending notifications based on user preference
func (t *NotifySubmissionTask) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	var args NotifySubmissionArgs
	if err := decodeArgs(task, &args); err != nil {
		return nil, err
	}
	if args.SubmissionID == 0 {
		return nil, errors.New("submission_id not provided")
	}
	db = db.WithContext(ctx)

	var submission models.Submission
	if err := db.First(&submission, args.SubmissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return skipped("submission_deleted"), nil
		}
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}

	var exhibit models.Exhibit
	if err := db.First(&exhibit, submission.ExhibitID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch exhibit: %w", err)
	}

	var curator models.User
	if err := db.First(&curator, exhibit.CuratorID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch curator: %w", err)
	}

	pref := models.DefaultNotifPreference(curator.ID)
	if err := db.Where("user_id = ?", curator.ID).First(&pref).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch preference: %w", err)
	}
	if pref.Channel == models.NotificationChannelNone {
		t.log.Debug("curator opted out of notifications", zap.Uint("user_id", curator.ID))
		return skipped("disabled"), nil
	}
	if curator.Email == "" {
		return skipped("no_email"), nil
	}

	creatorName := "A creator"
	var creator models.User
	if err := db.Select("name", "handle").First(&creator, submission.CreatorID).Error; err == nil && creator.DisplayName() != "" {
		creatorName = creator.DisplayName()
	}

	link := t.link(submission)
	subject := fmt.Sprintf("New submission to %s", exhibit.Title)
	body := fmt.Sprintf("Hi %s,\n\n%s submitted %q to %s.", curator.DisplayName(), creatorName, submission.Title, exhibit.Title)
	if link != "" {
		body += "\n\nReview it at " + link
	}

	if t.mailer == nil {
		return skipped("email_not_configured"), nil
	}
	if err := t.mailer.SendEmail([]string{curator.Email}, subject, body); err != nil {
		if errors.Is(err, services.ErrEmailNotConfigured) {
			return skipped("email_not_configured"), nil
		}
		return nil, fmt.Errorf("failed to notify curator %d: %w", curator.ID, err)
	}

	t.log.Info("curator notified", zap.Uint("submission_id", submission.ID), zap.Uint("user_id", curator.ID))
	return map[string]interface{}{
		"status":     "success",
		"curator_id": curator.ID,
		"link":       link,
	}, nil
}

// link is the absolute URL of the submission page, or "" when it cannot be
// built.
func (t *NotifySubmissionTask) link(s models.Submission) string {
	if t.table == nil {
		return ""
	}
	node, ok := t.table.LookupByExactPath(navigation.PathExhibitSubmission)
	if !ok {
		return ""
	}
	href, ok := node.Href(navigation.Params{
		"exhibitId":    fmt.Sprint(s.ExhibitID),
		"submissionId": fmt.Sprint(s.ID),
	})
	if !ok {
		return ""
	}
	return strings.TrimRight(t.appURL, "/") + href
}
