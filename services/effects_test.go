package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"famplan/model"
)

func TestRunEffectsIsolatesFailures(t *testing.T) {
	var ran []string
	effects := []Effect{
		{Name: "first", Run: func(ctx context.Context) error { ran = append(ran, "first"); return nil }},
		{Name: "second", Run: func(ctx context.Context) error { return errors.New("boom") }},
		{Name: "third", Run: func(ctx context.Context) error { ran = append(ran, "third"); return nil }},
	}

	failed := RunEffects(context.Background(), effects)

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"first", "third"}, ran)
}

func TestTaskCreatedNotifiesAssignee(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1")
	env.seedUser("u2", "token-a", "token-b")

	task := model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u2", GroupID: model.PersonalGroup, Status: model.TaskStatusPending}
	failed := RunEffects(env.Ctx, env.Handlers.TaskCreated(task))
	assert.Zero(t, failed)

	notifications := env.Store.Notifications()
	if assert.Len(t, notifications, 1) {
		assert.Equal(t, "u2", notifications[0].UserID)
		assert.Equal(t, model.NotifTypeTaskAssigned, notifications[0].Type)
		assert.Equal(t, "t1", notifications[0].Data.TaskID)
	}
	if assert.Len(t, env.Push.Sent(), 1) {
		assert.Equal(t, []string{"token-a", "token-b"}, env.Push.Sent()[0].Tokens)
	}

	activities := env.Store.Activities()
	if assert.Len(t, activities, 1) {
		assert.Equal(t, model.ActionCreated, activities[0].Action)
		assert.Equal(t, testNow, activities[0].CreatedAt)
	}
}

func TestTaskCreatedSelfAssignmentSuppressed(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1", "token")

	task := model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u1", GroupID: model.PersonalGroup, Status: model.TaskStatusPending}
	RunEffects(env.Ctx, env.Handlers.TaskCreated(task))

	assert.Empty(t, env.Store.Notifications())
	assert.Empty(t, env.Push.Sent())
	// The audit record is still written.
	assert.Len(t, env.Store.Activities(), 1)
}

func TestTaskCreatedMalformed(t *testing.T) {
	env := newTestEnv()
	assert.Nil(t, env.Handlers.TaskCreated(model.Task{}))
}

func TestTaskCompletionFanout(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1", "creator-token")
	env.seedUser("u2")

	before := model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u2", GroupID: model.PersonalGroup, Status: model.TaskStatusPending}
	after := before
	after.Status = model.TaskStatusCompleted
	after.CompletedBy = "u2"
	env.Store.PutTask(after)

	failed := RunEffects(env.Ctx, env.Handlers.TaskUpdated(before, after))
	assert.Zero(t, failed)

	notifications := env.Store.Notifications()
	if assert.Len(t, notifications, 1) {
		assert.Equal(t, "u1", notifications[0].UserID)
		assert.Equal(t, model.NotifTypeTaskCompleted, notifications[0].Type)
	}

	activities := env.Store.Activities()
	if assert.Len(t, activities, 1) {
		assert.Equal(t, model.ActionCompleted, activities[0].Action)
		assert.Equal(t, "u2", activities[0].UserID)
	}

	completer, _ := env.Store.User("u2")
	assert.Equal(t, 1, completer.Stats.TotalTasksCompleted)

	stamped, _ := env.Store.Task("t1")
	if assert.NotNil(t, stamped.CompletedAt) {
		assert.Equal(t, testNow, *stamped.CompletedAt)
	}
}

func TestTaskCompletionBySelfNotifiesNobody(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1")

	before := model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u1", GroupID: model.PersonalGroup, Status: model.TaskStatusPending}
	after := before
	after.Status = model.TaskStatusCompleted
	after.CompletedBy = "u1"
	env.Store.PutTask(after)

	RunEffects(env.Ctx, env.Handlers.TaskUpdated(before, after))

	assert.Empty(t, env.Store.Notifications())
	owner, _ := env.Store.User("u1")
	assert.Equal(t, 1, owner.Stats.TotalTasksCompleted)
}

func TestTaskUpdatedAssigneeChange(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u2")
	env.seedUser("u3")

	before := model.Task{TaskID: "t1", Title: "Sweep", UserID: "u1", AssigneeID: "u2", GroupID: model.PersonalGroup, Status: model.TaskStatusPending}
	after := before
	after.AssigneeID = "u3"

	RunEffects(env.Ctx, env.Handlers.TaskUpdated(before, after))

	notifications := env.Store.Notifications()
	if assert.Len(t, notifications, 1) {
		assert.Equal(t, "u3", notifications[0].UserID)
		assert.Equal(t, model.NotifTypeTaskAssigned, notifications[0].Type)
	}
}

func TestTaskUpdatedRecomputesGroupStats(t *testing.T) {
	env := newTestEnv()
	env.Store.PutGroup(model.Group{GroupID: "g1", Name: "Family", MemberIDs: []string{"u1", "u2"}})
	for i := 0; i < 10; i++ {
		status := model.TaskStatusPending
		if i < 4 {
			status = model.TaskStatusCompleted
		}
		env.Store.PutTask(model.Task{TaskID: string(rune('a' + i)), GroupID: "g1", Status: status})
	}

	before, _ := env.Store.Task("e")
	after := before
	after.Status = model.TaskStatusCompleted
	after.CompletedBy = "u2"
	env.seedUser("u2")
	env.Store.PutTask(after)

	failed := RunEffects(env.Ctx, env.Handlers.TaskUpdated(before, after))
	assert.Zero(t, failed)

	group, _ := env.Store.Group("g1")
	assert.Equal(t, 10, group.TotalTasks)
	assert.Equal(t, 5, group.CompletedTasks)
	assert.Equal(t, 50, group.CompletionRate)
}

func TestCommentFanoutAndMentionEscalation(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1", "t1")
	env.seedUser("u2", "t2")
	env.seedUser("u3")
	env.Store.PutTask(model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u2", GroupID: model.PersonalGroup, Status: model.TaskStatusPending})

	comment := model.Comment{
		CommentID: "c1", TaskID: "t1", UserID: "u3", UserName: "Cara",
		Mentions: []string{"u1"}, Message: "ping", CreatedAt: testNow,
	}
	env.Store.PutComment(comment)

	effects, err := env.Handlers.CommentCreated(env.Ctx, comment)
	assert.NoError(t, err)
	failed := RunEffects(env.Ctx, effects)
	assert.Zero(t, failed)

	byUser := map[string]model.Notification{}
	for _, n := range env.Store.Notifications() {
		byUser[n.UserID] = n
	}
	if assert.Len(t, byUser, 2) {
		assert.Equal(t, model.NotifTypeMention, byUser["u1"].Type)
		assert.Equal(t, model.PriorityHigh, byUser["u1"].Priority)
		assert.Contains(t, byUser["u1"].Message, "mentioned you")

		assert.Equal(t, model.NotifTypeNewComment, byUser["u2"].Type)
		assert.Equal(t, model.PriorityMedium, byUser["u2"].Priority)
	}

	task, _ := env.Store.Task("t1")
	assert.Equal(t, 1, task.CommentCount)
	if assert.NotNil(t, task.LastCommentAt) {
		assert.Equal(t, testNow, *task.LastCommentAt)
	}
}

func TestCommentAuthorExcluded(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1")
	env.seedUser("u2")
	env.Store.PutTask(model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u2", GroupID: model.PersonalGroup, Status: model.TaskStatusPending})

	comment := model.Comment{CommentID: "c1", TaskID: "t1", UserID: "u1", UserName: "Ana", Message: "done?", CreatedAt: testNow}
	env.Store.PutComment(comment)

	effects, err := env.Handlers.CommentCreated(env.Ctx, comment)
	assert.NoError(t, err)
	RunEffects(env.Ctx, effects)

	notifications := env.Store.Notifications()
	if assert.Len(t, notifications, 1) {
		assert.Equal(t, "u2", notifications[0].UserID)
	}
}

func TestCommentFanoutIdempotentUnderRedelivery(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1")
	env.seedUser("u2")
	env.Store.PutTask(model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", AssigneeID: "u2", GroupID: model.PersonalGroup, Status: model.TaskStatusPending})

	comment := model.Comment{CommentID: "c1", TaskID: "t1", UserID: "u2", UserName: "Ben", Message: "on it", CreatedAt: testNow}
	env.Store.PutComment(comment)

	for i := 0; i < 2; i++ {
		effects, err := env.Handlers.CommentCreated(env.Ctx, comment)
		assert.NoError(t, err)
		RunEffects(env.Ctx, effects)
	}

	// Redelivery overwrites the same notification document and recounts
	// to the same value.
	assert.Len(t, env.Store.Notifications(), 1)
	task, _ := env.Store.Task("t1")
	assert.Equal(t, 1, task.CommentCount)
}

func TestCommentCountTracksLiveCount(t *testing.T) {
	env := newTestEnv()
	env.seedUser("u1")
	env.Store.PutTask(model.Task{TaskID: "t1", Title: "Buy milk", UserID: "u1", GroupID: model.PersonalGroup, Status: model.TaskStatusPending})

	first := model.Comment{CommentID: "c1", TaskID: "t1", UserID: "u1", Message: "one", CreatedAt: testNow}
	second := model.Comment{CommentID: "c2", TaskID: "t1", UserID: "u1", Message: "two", CreatedAt: testNow}

	env.Store.PutComment(first)
	effects, _ := env.Handlers.CommentCreated(env.Ctx, first)
	RunEffects(env.Ctx, effects)

	env.Store.PutComment(second)
	effects, _ = env.Handlers.CommentCreated(env.Ctx, second)
	RunEffects(env.Ctx, effects)

	task, _ := env.Store.Task("t1")
	assert.Equal(t, 2, task.CommentCount)

	env.Store.DeleteComment("c1")
	RunEffects(env.Ctx, env.Handlers.CommentDeleted(first))

	task, _ = env.Store.Task("t1")
	assert.Equal(t, 1, task.CommentCount)
}

func TestCommentCreatedMissingTaskAbandoned(t *testing.T) {
	env := newTestEnv()
	comment := model.Comment{CommentID: "c1", TaskID: "nope", UserID: "u1", CreatedAt: testNow}

	effects, err := env.Handlers.CommentCreated(env.Ctx, comment)
	assert.Error(t, err)
	assert.Nil(t, effects)
}
