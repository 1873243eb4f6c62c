package services

import (
	"context"
	"math"
	"time"

	"famplan/model"
	"famplan/store"
)

// Stats recomputes the denormalized aggregates.
type Stats struct {
	Store store.Store
	Now   func() time.Time
}

func (s *Stats) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// RecomputeGroup rescans all of the group's tasks and overwrites the
// stored totals. Concurrent recomputes race, but each writes a full
// snapshot, so the last writer leaves a consistent result.
func (s *Stats) RecomputeGroup(ctx context.Context, groupID string) error {
	tasks, err := s.Store.TasksByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	total := len(tasks)
	completed := 0
	for _, task := range tasks {
		if task.Status == model.TaskStatusCompleted {
			completed++
		}
	}
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return s.Store.SetGroupStats(ctx, groupID, total, completed, rate)
}

// ApplyCompletion bumps the completer's counters. The streak only grows
// once per calendar day: a second completion on the same day counts
// toward the total but not the streak.
func (s *Stats) ApplyCompletion(ctx context.Context, userID string) error {
	today := s.now().Format("2006-01-02")
	return s.Store.UpdateUserStats(ctx, userID, func(stats *model.UserStats) {
		stats.TotalTasksCompleted++
		if stats.LastCompletionDate == today {
			return
		}
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		stats.LastCompletionDate = today
	})
}

// RecountComments overwrites the task's denormalized comment count with a
// live count. A recount is idempotent under redelivery, unlike an
// increment.
func (s *Stats) RecountComments(ctx context.Context, taskID string, lastCommentAt *time.Time) error {
	count, err := s.Store.CountComments(ctx, taskID)
	if err != nil {
		return err
	}
	return s.Store.SetTaskCommentCount(ctx, taskID, count, lastCommentAt)
}
