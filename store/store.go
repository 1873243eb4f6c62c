package store

import (
	"context"
	"errors"
	"time"

	"famplan/model"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the document-store boundary used by the pipeline. Triggers and
// scheduled jobs receive an implementation explicitly so tests can swap in
// the in-memory one. Implementations must be safe for concurrent use.
type Store interface {
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetTask(ctx context.Context, taskID string) (*model.Task, error)

	TasksByGroup(ctx context.Context, groupID string) ([]model.Task, error)
	// TasksDueBy returns tasks with status pending or in_progress whose due
	// date is at or before the deadline. Tasks without a due date never match.
	TasksDueBy(ctx context.Context, deadline time.Time) ([]model.Task, error)
	CountCompletedInGroup(ctx context.Context, groupID, userID string, since time.Time) (int, error)
	StampTaskCompletion(ctx context.Context, taskID string, completedAt time.Time) error

	Groups(ctx context.Context) ([]model.Group, error)
	SetGroupStats(ctx context.Context, groupID string, total, completed, rate int) error

	CountComments(ctx context.Context, taskID string) (int, error)
	SetTaskCommentCount(ctx context.Context, taskID string, count int, lastCommentAt *time.Time) error

	// UpdateUserStats applies the mutation inside the store's transaction
	// primitive, so concurrent completions by the same user cannot lose
	// updates.
	UpdateUserStats(ctx context.Context, userID string, apply func(*model.UserStats)) error

	// PutNotification upserts by NotificationID. Fanout derives IDs
	// deterministically, so a redelivered event overwrites its own record
	// instead of appending a duplicate.
	PutNotification(ctx context.Context, n model.Notification) error
	AppendActivity(ctx context.Context, a model.Activity) error
}
