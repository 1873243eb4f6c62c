package scheduler

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"famplan/model"
	"famplan/services"
	"famplan/store"
)

const (
	BucketOverdue = "overdue"
	BucketHours   = "hours"
	BucketDays    = "days"
)

// Urgency buckets a due date relative to now: already past, due within
// 24 hours (with hours left), or further out (with days left).
func Urgency(now, due time.Time) (string, int) {
	remaining := due.Sub(now)
	switch {
	case remaining < 0:
		return BucketOverdue, 0
	case remaining < 24*time.Hour:
		return BucketHours, int(math.Ceil(remaining.Hours()))
	default:
		return BucketDays, int(math.Ceil(remaining.Hours() / 24))
	}
}

// Jobs holds the two scheduled batch jobs.
type Jobs struct {
	Store  store.Store
	Fanout *services.Fanout
	Now    func() time.Time
}

func (j *Jobs) now() time.Time {
	if j.Now == nil {
		return time.Now()
	}
	return j.Now()
}

// DailyReminders scans every open task due by end of today and reminds
// its assignee. The fan-out is parallel and each task is isolated: one
// failed reminder never aborts the rest.
func (j *Jobs) DailyReminders(ctx context.Context) {
	now := j.now()
	year, month, day := now.Date()
	endOfDay := time.Date(year, month, day, 23, 59, 59, 0, now.Location())

	tasks, err := j.Store.TasksDueBy(ctx, endOfDay)
	if err != nil {
		log.Printf("daily reminders: due-task scan failed: %v", err)
		return
	}

	var wg sync.WaitGroup
	for _, task := range tasks {
		if task.AssigneeID == "" || task.DueDate == nil {
			continue
		}
		wg.Add(1)
		go func(task model.Task) {
			defer wg.Done()
			if err := j.remind(ctx, task, now); err != nil {
				log.Printf("daily reminders: task %s: %v", task.TaskID, err)
			}
		}(task)
	}
	wg.Wait()
	log.Printf("daily reminders: %d task(s) matched", len(tasks))
}

func (j *Jobs) remind(ctx context.Context, task model.Task, now time.Time) error {
	bucket, amount := Urgency(now, *task.DueDate)

	var message string
	priority := model.PriorityMedium
	switch bucket {
	case BucketOverdue:
		message = fmt.Sprintf("%q is already due", task.Title)
		priority = model.PriorityHigh
	case BucketHours:
		message = fmt.Sprintf("%q is due in %d hour(s)", task.Title, amount)
	default:
		message = fmt.Sprintf("%q is due in %d day(s)", task.Title, amount)
	}

	return j.Fanout.Notify(ctx, services.Note{
		Kind:      "reminder",
		SourceID:  task.TaskID + ":" + now.Format("2006-01-02"),
		Recipient: task.AssigneeID,
		Title:     "Task reminder",
		Message:   message,
		Type:      model.NotifTypeTaskReminder,
		Priority:  priority,
		TaskID:    task.TaskID,
		Extra:     map[string]string{"urgency": bucket},
	})
}

// WeeklySummaries walks every group and every member and sends each
// member their completed-task count for that group over the trailing
// seven days. Per-member failures are logged and skipped.
func (j *Jobs) WeeklySummaries(ctx context.Context) {
	groups, err := j.Store.Groups(ctx)
	if err != nil {
		log.Printf("weekly summaries: group scan failed: %v", err)
		return
	}

	now := j.now()
	since := now.AddDate(0, 0, -7)
	year, week := now.ISOWeek()

	for _, group := range groups {
		for _, member := range group.MemberIDs {
			count, err := j.Store.CountCompletedInGroup(ctx, group.GroupID, member, since)
			if err != nil {
				log.Printf("weekly summaries: group %s member %s: %v", group.GroupID, member, err)
				continue
			}
			note := services.Note{
				Kind:      "weekly-summary",
				SourceID:  fmt.Sprintf("%s:%d-W%02d", group.GroupID, year, week),
				Recipient: member,
				Title:     "Your weekly summary",
				Message:   fmt.Sprintf("You completed %d task(s) in %s this week", count, group.Name),
				Type:      model.NotifTypeWeeklySummary,
				Priority:  model.PriorityLow,
				URL:       fmt.Sprintf("%s/groups/%s", j.Fanout.BaseURL, group.GroupID),
			}
			if err := j.Fanout.Notify(ctx, note); err != nil {
				log.Printf("weekly summaries: notify %s: %v", member, err)
			}
		}
	}
}
