package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"famplan/model"
	"famplan/store"
)

// Effect is one intended side effect of a trigger event. Handlers first
// validate the event and emit the full effect list; RunEffects then
// executes each with independent error isolation.
type Effect struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunEffects executes every effect in order. A failing effect is logged
// and the rest still run. Returns the number of failures.
func RunEffects(ctx context.Context, effects []Effect) int {
	failed := 0
	for _, effect := range effects {
		if err := effect.Run(ctx); err != nil {
			log.Printf("effect %s failed: %v", effect.Name, err)
			failed++
		}
	}
	return failed
}

// Handlers turns document-change events into effect lists.
type Handlers struct {
	Store    store.Store
	Fanout   *Fanout
	Stats    *Stats
	Activity *ActivityLog
	Now      func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// TaskCreated notifies the assignee (unless self-assigned), recomputes
// group stats for shared tasks, and logs the creation.
func (h *Handlers) TaskCreated(task model.Task) []Effect {
	if task.TaskID == "" {
		return nil
	}
	var effects []Effect
	if task.AssigneeID != "" && task.AssigneeID != task.UserID {
		note := assignmentNote(task)
		effects = append(effects, Effect{
			Name: "notify-assignee",
			Run:  func(ctx context.Context) error { return h.Fanout.Notify(ctx, note) },
		})
	}
	effects = h.appendGroupStats(effects, task)
	effects = append(effects, Effect{
		Name: "activity-created",
		Run: func(ctx context.Context) error {
			return h.Activity.Record(ctx, task.TaskID, task.UserID, model.ActionCreated, task.Title)
		},
	})
	return effects
}

// TaskUpdated diffs the before/after snapshots. An assignee change
// notifies the new assignee; a transition into completed notifies the
// creator, stamps the completion time, and bumps the completer's stats.
// Reopening a completed task is just another update.
func (h *Handlers) TaskUpdated(before, after model.Task) []Effect {
	if before.TaskID == "" || after.TaskID == "" {
		return nil
	}
	var effects []Effect

	if after.AssigneeID != "" && after.AssigneeID != before.AssigneeID {
		note := assignmentNote(after)
		effects = append(effects, Effect{
			Name: "notify-new-assignee",
			Run:  func(ctx context.Context) error { return h.Fanout.Notify(ctx, note) },
		})
	}

	completed := before.Status != model.TaskStatusCompleted && after.Status == model.TaskStatusCompleted
	if completed {
		completer := after.CompletedBy
		if completer == "" {
			completer = after.AssigneeID
		}
		if after.UserID != completer {
			note := completionNote(after)
			effects = append(effects, Effect{
				Name: "notify-creator",
				Run:  func(ctx context.Context) error { return h.Fanout.Notify(ctx, note) },
			})
		}
		if after.CompletedAt == nil {
			effects = append(effects, Effect{
				Name: "stamp-completion",
				Run: func(ctx context.Context) error {
					return h.Store.StampTaskCompletion(ctx, after.TaskID, h.now())
				},
			})
		}
		effects = append(effects, Effect{
			Name: "user-stats",
			Run:  func(ctx context.Context) error { return h.Stats.ApplyCompletion(ctx, completer) },
		})
		effects = append(effects, Effect{
			Name: "activity-completed",
			Run: func(ctx context.Context) error {
				return h.Activity.Record(ctx, after.TaskID, completer, model.ActionCompleted, after.Title)
			},
		})
	} else if taskChanged(before, after) {
		effects = append(effects, Effect{
			Name: "activity-updated",
			Run: func(ctx context.Context) error {
				return h.Activity.Record(ctx, after.TaskID, after.UserID, model.ActionUpdated, after.Title)
			},
		})
	}

	effects = h.appendGroupStats(effects, after)
	return effects
}

// CommentCreated recounts the task's comments, notifies the task creator
// and assignee (excluding the author, with mention escalation), and logs
// the comment. The task is loaded up front; a missing task abandons the
// whole event.
func (h *Handlers) CommentCreated(ctx context.Context, comment model.Comment) ([]Effect, error) {
	if comment.CommentID == "" || comment.TaskID == "" {
		return nil, nil
	}
	task, err := h.Store.GetTask(ctx, comment.TaskID)
	if err != nil {
		return nil, fmt.Errorf("load task %s for comment %s: %w", comment.TaskID, comment.CommentID, err)
	}

	lastCommentAt := comment.CreatedAt
	if lastCommentAt.IsZero() {
		lastCommentAt = h.now()
	}
	effects := []Effect{{
		Name: "comment-count",
		Run: func(ctx context.Context) error {
			return h.Stats.RecountComments(ctx, comment.TaskID, &lastCommentAt)
		},
	}}

	for _, recipient := range commentRecipients(*task, comment.UserID) {
		note := commentNote(*task, comment, recipient)
		effects = append(effects, Effect{
			Name: "notify-" + recipient,
			Run:  func(ctx context.Context) error { return h.Fanout.Notify(ctx, note) },
		})
	}

	effects = append(effects, Effect{
		Name: "activity-commented",
		Run: func(ctx context.Context) error {
			return h.Activity.Record(ctx, comment.TaskID, comment.UserID, model.ActionCommented, comment.Message)
		},
	})
	return effects, nil
}

// CommentDeleted recounts so the denormalized count tracks the live one.
func (h *Handlers) CommentDeleted(comment model.Comment) []Effect {
	if comment.CommentID == "" || comment.TaskID == "" {
		return nil
	}
	return []Effect{{
		Name: "comment-count",
		Run: func(ctx context.Context) error {
			return h.Stats.RecountComments(ctx, comment.TaskID, nil)
		},
	}}
}

func (h *Handlers) appendGroupStats(effects []Effect, task model.Task) []Effect {
	if task.GroupID == "" || task.GroupID == model.PersonalGroup {
		return effects
	}
	groupID := task.GroupID
	return append(effects, Effect{
		Name: "group-stats",
		Run:  func(ctx context.Context) error { return h.Stats.RecomputeGroup(ctx, groupID) },
	})
}

func taskChanged(before, after model.Task) bool {
	if before.Title != after.Title || before.Status != after.Status || before.GroupID != after.GroupID {
		return true
	}
	switch {
	case before.DueDate == nil && after.DueDate == nil:
		return false
	case before.DueDate == nil || after.DueDate == nil:
		return true
	default:
		return !before.DueDate.Equal(*after.DueDate)
	}
}

func commentRecipients(task model.Task, author string) []string {
	var recipients []string
	for _, candidate := range []string{task.UserID, task.AssigneeID} {
		if candidate == "" || candidate == author {
			continue
		}
		if !slices.Contains(recipients, candidate) {
			recipients = append(recipients, candidate)
		}
	}
	return recipients
}

func assignmentNote(task model.Task) Note {
	return Note{
		Kind:      "task-assigned",
		SourceID:  task.TaskID,
		Recipient: task.AssigneeID,
		Title:     "New task assigned",
		Message:   fmt.Sprintf("You have been assigned %q", task.Title),
		Type:      model.NotifTypeTaskAssigned,
		Priority:  model.PriorityMedium,
		TaskID:    task.TaskID,
	}
}

func completionNote(task model.Task) Note {
	return Note{
		Kind:      "task-completed",
		SourceID:  task.TaskID,
		Recipient: task.UserID,
		Title:     "Task completed",
		Message:   fmt.Sprintf("%q was marked as completed", task.Title),
		Type:      model.NotifTypeTaskCompleted,
		Priority:  model.PriorityMedium,
		TaskID:    task.TaskID,
	}
}

func commentNote(task model.Task, comment model.Comment, recipient string) Note {
	note := Note{
		Kind:      "new-comment",
		SourceID:  comment.CommentID,
		Recipient: recipient,
		Title:     "New comment",
		Message:   fmt.Sprintf("%s commented on %q", comment.UserName, task.Title),
		Type:      model.NotifTypeNewComment,
		Priority:  model.PriorityMedium,
		TaskID:    task.TaskID,
	}
	if slices.Contains(comment.Mentions, recipient) {
		note.Title = "You were mentioned"
		note.Message = fmt.Sprintf("%s mentioned you in %q", comment.UserName, task.Title)
		note.Type = model.NotifTypeMention
		note.Priority = model.PriorityHigh
	}
	return note
}
