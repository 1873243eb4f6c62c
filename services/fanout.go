package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"famplan/model"
	"famplan/push"
	"famplan/store"
)

// Note describes one recipient-specific notification to fan out. Kind and
// SourceID identify the triggering event so the persisted record gets a
// stable document ID.
type Note struct {
	Kind      string
	SourceID  string
	Recipient string
	Title     string
	Message   string
	Type      string
	Priority  string
	TaskID    string
	URL       string
	Extra     map[string]string
}

// Fanout decides nothing about recipients; it takes a fully composed Note,
// pushes it to the recipient's devices, and persists the in-app record.
type Fanout struct {
	Store   store.Store
	Push    push.Sender
	BaseURL string
	Now     func() time.Time
}

func (f *Fanout) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Notify delivers one Note. A missing recipient is skipped silently. The
// in-app Notification document is written whether or not the push went
// out; push is best effort and the inbox is the durable record.
func (f *Fanout) Notify(ctx context.Context, n Note) error {
	user, err := f.Store.GetUser(ctx, n.Recipient)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("fanout: recipient %s not found, skipping %s", n.Recipient, n.Kind)
			return nil
		}
		return fmt.Errorf("fanout: load recipient %s: %w", n.Recipient, err)
	}

	if n.URL == "" && n.TaskID != "" {
		n.URL = fmt.Sprintf("%s/tasks/%s", f.BaseURL, n.TaskID)
	}

	if len(user.FCMTokens) > 0 {
		data := map[string]string{
			"type":   n.Type,
			"taskId": n.TaskID,
			"url":    n.URL,
		}
		for k, v := range n.Extra {
			data[k] = v
		}
		result, err := f.Push.Send(ctx, push.Message{
			Title:  n.Title,
			Body:   n.Message,
			Data:   data,
			Tokens: user.FCMTokens,
		})
		if err != nil {
			log.Printf("fanout: push %s to %s failed: %v", n.Kind, n.Recipient, err)
		} else if result.FailureCount > 0 {
			log.Printf("fanout: push %s to %s: %d sent, %d failed", n.Kind, n.Recipient, result.SuccessCount, result.FailureCount)
		}
	}

	notification := model.Notification{
		NotificationID: NotificationID(n.Kind, n.SourceID, n.Recipient),
		UserID:         n.Recipient,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		Status:         model.NotificationStatusUnread,
		Priority:       n.Priority,
		CreatedAt:      f.now(),
		Data: model.NotificationData{
			TaskID:    n.TaskID,
			ActionURL: n.URL,
		},
	}
	return f.Store.PutNotification(ctx, notification)
}

// NotificationID derives a stable document ID from the event identity, so
// at-least-once trigger delivery overwrites instead of duplicating.
func NotificationID(kind, sourceID, recipient string) string {
	name := fmt.Sprintf("famplan:%s:%s:%s", kind, sourceID, recipient)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
