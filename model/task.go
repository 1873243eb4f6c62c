package model

import (
	"time"
)

// PersonalGroup is the sentinel groupId for tasks that are not shared
// with any group.
const PersonalGroup = "personal"

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

type Task struct {
	TaskID        string     `firestore:"taskid,omitempty" json:"taskId"`
	Title         string     `firestore:"title,omitempty" json:"title"`
	UserID        string     `firestore:"userid,omitempty" json:"userId"`
	AssigneeID    string     `firestore:"assigneeid,omitempty" json:"assigneeId"`
	GroupID       string     `firestore:"groupid,omitempty" json:"groupId"`
	Status        string     `firestore:"status,omitempty" json:"status"`
	DueDate       *time.Time `firestore:"duedate,omitempty" json:"dueDate,omitempty"`
	CompletedBy   string     `firestore:"completedby,omitempty" json:"completedBy,omitempty"`
	CompletedAt   *time.Time `firestore:"completedat,omitempty" json:"completedAt,omitempty"`
	CommentCount  int        `firestore:"commentcount" json:"commentCount"`
	LastCommentAt *time.Time `firestore:"lastcommentat,omitempty" json:"lastCommentAt,omitempty"`
	CreatedAt     time.Time  `firestore:"createdat,omitempty" json:"createdAt"`
	UpdatedAt     time.Time  `firestore:"updatedat,omitempty" json:"updatedAt"`
}
