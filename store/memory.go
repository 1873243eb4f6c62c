package store

import (
	"context"
	"sync"
	"time"

	"famplan/model"
)

// Memory is an in-memory Store used by tests and local runs without
// Firestore credentials.
type Memory struct {
	// Now stamps activities whose CreatedAt is zero, standing in for the
	// server-assigned timestamp. Defaults to time.Now.
	Now func() time.Time

	mu            sync.Mutex
	users         map[string]model.User
	tasks         map[string]model.Task
	comments      map[string]model.Comment
	groups        map[string]model.Group
	notifications map[string]model.Notification
	activities    []model.Activity
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[string]model.User),
		tasks:         make(map[string]model.Task),
		comments:      make(map[string]model.Comment),
		groups:        make(map[string]model.Group),
		notifications: make(map[string]model.Notification),
	}
}

func (m *Memory) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Seeding and inspection helpers.

func (m *Memory) PutUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.UserID] = u
}

func (m *Memory) PutTask(t model.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[t.TaskID] = t
}

func (m *Memory) PutComment(c model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[c.CommentID] = c
}

func (m *Memory) DeleteComment(commentID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, commentID)
}

func (m *Memory) PutGroup(g model.Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[g.GroupID] = g
}

func (m *Memory) User(userID string) (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	return u, ok
}

func (m *Memory) Task(taskID string) (model.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	return t, ok
}

func (m *Memory) Group(groupID string) (model.Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[groupID]
	return g, ok
}

func (m *Memory) Notifications() []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Notification, 0, len(m.notifications))
	for _, n := range m.notifications {
		out = append(out, n)
	}
	return out
}

func (m *Memory) Activities() []model.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Activity, len(m.activities))
	copy(out, m.activities)
	return out
}

// Store implementation.

func (m *Memory) GetUser(ctx context.Context, userID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *Memory) TasksByGroup(ctx context.Context, groupID string) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []model.Task
	for _, t := range m.tasks {
		if t.GroupID == groupID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (m *Memory) TasksDueBy(ctx context.Context, deadline time.Time) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []model.Task
	for _, t := range m.tasks {
		if t.Status != model.TaskStatusPending && t.Status != model.TaskStatusInProgress {
			continue
		}
		if t.DueDate == nil || t.DueDate.After(deadline) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (m *Memory) CountCompletedInGroup(ctx context.Context, groupID, userID string, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, t := range m.tasks {
		if t.GroupID != groupID || t.CompletedBy != userID || t.Status != model.TaskStatusCompleted {
			continue
		}
		if t.CompletedAt == nil || t.CompletedAt.Before(since) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *Memory) StampTaskCompletion(ctx context.Context, taskID string, completedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok {
		return ErrNotFound
	}
	t.CompletedAt = &completedAt
	m.tasks[taskID] = t
	return nil
}

func (m *Memory) Groups(ctx context.Context) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var groups []model.Group
	for _, g := range m.groups {
		groups = append(groups, g)
	}
	return groups, nil
}

func (m *Memory) SetGroupStats(ctx context.Context, groupID string, total, completed, rate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[groupID]
	if !ok {
		return ErrNotFound
	}
	g.TotalTasks = total
	g.CompletedTasks = completed
	g.CompletionRate = rate
	m.groups[groupID] = g
	return nil
}

func (m *Memory) CountComments(ctx context.Context, taskID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.comments {
		if c.TaskID == taskID {
			count++
		}
	}
	return count, nil
}

func (m *Memory) SetTaskCommentCount(ctx context.Context, taskID string, count int, lastCommentAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok {
		return ErrNotFound
	}
	t.CommentCount = count
	if lastCommentAt != nil {
		t.LastCommentAt = lastCommentAt
	}
	m.tasks[taskID] = t
	return nil
}

func (m *Memory) UpdateUserStats(ctx context.Context, userID string, apply func(*model.UserStats)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	apply(&u.Stats)
	m.users[userID] = u
	return nil
}

func (m *Memory) PutNotification(ctx context.Context, n model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *Memory) AppendActivity(ctx context.Context, a model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.now()
	}
	m.activities = append(m.activities, a)
	return nil
}
