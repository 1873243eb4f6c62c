package model

import (
	"time"
)

const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionUpdated   = "updated"
	ActionCommented = "commented"
)

// Activity is a pure audit record; the pipeline appends it and never
// reads it back.
type Activity struct {
	ActivityID string    `firestore:"activityid,omitempty" json:"activityId"`
	TaskID     string    `firestore:"taskid,omitempty" json:"taskId"`
	UserID     string    `firestore:"userid,omitempty" json:"userId"`
	Action     string    `firestore:"action,omitempty" json:"action"`
	Details    string    `firestore:"details,omitempty" json:"details,omitempty"`
	CreatedAt  time.Time `firestore:"createdat,serverTimestamp" json:"createdAt"`
}
