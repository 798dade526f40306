package tasks

import (
	"go.uber.org/zap"

	"galeri_app_echo/internal/navigation"
)

// Deps are the collaborators task handlers need at run time.
type Deps struct {
	Log    *zap.Logger
	Mailer Mailer
	Table  *navigation.Table
	// AppURL prefixes links sent in notifications.
	AppURL string
}

// DefineTasks registers all available tasks
func DefineTasks(r *Registry, deps Deps) {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	r.Register(LogInfoTaskID, NewLogInfoTask(deps.Log).HandleExecution)
	r.Register(RotateFeaturedPromptTaskID, NewRotateFeaturedPromptTask(deps.Log).HandleExecution)
	r.Register(NotifySubmissionTaskID, NewNotifySubmissionTask(deps).HandleExecution)
}
