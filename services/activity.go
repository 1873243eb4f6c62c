package services

import (
	"context"

	"github.com/google/uuid"

	"famplan/model"
	"famplan/store"
)

// ActivityLog appends audit records for task lifecycle events. CreatedAt
// is left to the store's server timestamp.
type ActivityLog struct {
	Store store.Store
}

func (a *ActivityLog) Record(ctx context.Context, taskID, userID, action, details string) error {
	activity := model.Activity{
		ActivityID: uuid.New().String(),
		TaskID:     taskID,
		UserID:     userID,
		Action:     action,
		Details:    details,
	}
	return a.Store.AppendActivity(ctx, activity)
}
