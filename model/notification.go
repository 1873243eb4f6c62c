package model

import (
	"time"
)

const (
	NotificationStatusUnread = "unread"
	NotificationStatusRead   = "read"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	NotifTypeTaskAssigned  = "task_assigned"
	NotifTypeTaskCompleted = "task_completed"
	NotifTypeNewComment    = "new_comment"
	NotifTypeMention       = "mention"
	NotifTypeTaskReminder  = "task_reminder"
	NotifTypeWeeklySummary = "weekly_summary"
)

// NotificationData links an in-app notification back to the task or view
// it was raised for.
type NotificationData struct {
	TaskID    string `firestore:"taskid,omitempty" json:"taskId,omitempty"`
	ActionURL string `firestore:"actionurl,omitempty" json:"actionUrl,omitempty"`
}

type Notification struct {
	NotificationID string           `firestore:"notificationid,omitempty" json:"notificationId"`
	UserID         string           `firestore:"userid,omitempty" json:"userId"`
	Title          string           `firestore:"title,omitempty" json:"title"`
	Message        string           `firestore:"message,omitempty" json:"message"`
	Type           string           `firestore:"type,omitempty" json:"type"`
	Status         string           `firestore:"status,omitempty" json:"status"`
	Priority       string           `firestore:"priority,omitempty" json:"priority"`
	CreatedAt      time.Time        `firestore:"createdat,omitempty" json:"createdAt"`
	Data           NotificationData `firestore:"data" json:"data"`
}
