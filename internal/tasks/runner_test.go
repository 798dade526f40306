package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
)

var runnerNow = time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)

func newTestRunner(t *testing.T, handlers map[string]TaskHandler) (*Runner, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	registry := NewRegistry()
	for name, h := range handlers {
		registry.Register(name, h)
	}
	r := NewRunner(db, registry, zap.NewNop())
	r.now = func() time.Time { return runnerNow }
	return r, mock
}

func expectHistory(mock sqlmock.Sqlmock, status string) {
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "scheduled_task_histories"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "demo", sqlmock.AnyArg(), sqlmock.AnyArg(), status, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
}

func expectTaskUpdate(mock sqlmock.Sqlmock, status models.ScheduledTaskStatus) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "scheduled_tasks" SET`).
		WithArgs(sqlmock.AnyArg(), string(status), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestRunnerExecuteSuccess(t *testing.T) {
	calls := 0
	r, mock := newTestRunner(t, map[string]TaskHandler{
		"demo": func(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
			calls++
			return map[string]interface{}{"ok": true}, nil
		},
	})

	expectHistory(mock, RunSuccess)
	expectTaskUpdate(mock, models.ScheduledTaskStatusDone)

	r.Execute(context.Background(), models.ScheduledTask{ID: 4, TaskName: "demo", TaskType: models.ScheduledTaskTypeOneTime, MaxAttempt: 3})
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerExecuteRetriesUntilMaxAttempt(t *testing.T) {
	calls := 0
	r, mock := newTestRunner(t, map[string]TaskHandler{
		"demo": func(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
			calls++
			return nil, errors.New("mail server down")
		},
	})

	expectHistory(mock, RunFailure)
	expectHistory(mock, RunFailure)
	expectTaskUpdate(mock, models.ScheduledTaskStatusFailure)

	r.Execute(context.Background(), models.ScheduledTask{ID: 4, TaskName: "demo", MaxAttempt: 2})
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerExecuteUnknownTask(t *testing.T) {
	r, mock := newTestRunner(t, nil)

	expectHistory(mock, RunHandlerNotFound)
	expectTaskUpdate(mock, models.ScheduledTaskStatusFailure)

	r.Execute(context.Background(), models.ScheduledTask{ID: 4, TaskName: "demo"})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunnerRunDue(t *testing.T) {
	r, mock := newTestRunner(t, map[string]TaskHandler{
		"demo": func(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
			assert.Equal(t, "hello", task.Arguments["message"])
			return nil, nil
		},
	})

	mock.ExpectQuery(`SELECT (.+) FROM "scheduled_tasks" WHERE (.+)status = \$1 AND due <= \$2`).
		WithArgs(models.ScheduledTaskStatusActive, runnerNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_name", "arguments", "due", "status", "task_type", "max_attempt"}).
			AddRow(4, "demo", []byte(`{"message":"hello"}`), runnerNow.Add(-time.Minute), "active", "onetime", 1))
	expectHistory(mock, RunSuccess)
	expectTaskUpdate(mock, models.ScheduledTaskStatusDone)

	n, err := r.RunDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
