package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"famplan/model"
)

const (
	usersCollection         = "users"
	tasksCollection         = "tasks"
	commentsCollection      = "comments"
	groupsCollection        = "groups"
	notificationsCollection = "notifications"
	activitiesCollection    = "activities"
)

// Firestore implements Store on top of a Firestore client.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (s *Firestore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	doc, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var user model.User
	if err := doc.DataTo(&user); err != nil {
		return nil, err
	}
	user.UserID = doc.Ref.ID
	return &user, nil
}

func (s *Firestore) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	doc, err := s.client.Collection(tasksCollection).Doc(taskID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var task model.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, err
	}
	task.TaskID = doc.Ref.ID
	return &task, nil
}

func (s *Firestore) TasksByGroup(ctx context.Context, groupID string) ([]model.Task, error) {
	iter := s.client.Collection(tasksCollection).
		Where("groupid", "==", groupID).
		Documents(ctx)
	return collectTasks(iter)
}

func (s *Firestore) TasksDueBy(ctx context.Context, deadline time.Time) ([]model.Task, error) {
	iter := s.client.Collection(tasksCollection).
		Where("status", "in", []string{model.TaskStatusPending, model.TaskStatusInProgress}).
		Where("duedate", "<=", deadline).
		Documents(ctx)
	return collectTasks(iter)
}

func (s *Firestore) CountCompletedInGroup(ctx context.Context, groupID, userID string, since time.Time) (int, error) {
	docs, err := s.client.Collection(tasksCollection).
		Where("groupid", "==", groupID).
		Where("completedby", "==", userID).
		Where("status", "==", model.TaskStatusCompleted).
		Where("completedat", ">=", since).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *Firestore) StampTaskCompletion(ctx context.Context, taskID string, completedAt time.Time) error {
	_, err := s.client.Collection(tasksCollection).Doc(taskID).Update(ctx, []firestore.Update{
		{Path: "completedat", Value: completedAt},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *Firestore) Groups(ctx context.Context) ([]model.Group, error) {
	iter := s.client.Collection(groupsCollection).Documents(ctx)
	defer iter.Stop()

	var groups []model.Group
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var group model.Group
		if err := doc.DataTo(&group); err != nil {
			return nil, err
		}
		group.GroupID = doc.Ref.ID
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Firestore) SetGroupStats(ctx context.Context, groupID string, total, completed, rate int) error {
	_, err := s.client.Collection(groupsCollection).Doc(groupID).Update(ctx, []firestore.Update{
		{Path: "totaltasks", Value: total},
		{Path: "completedtasks", Value: completed},
		{Path: "completionrate", Value: rate},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *Firestore) CountComments(ctx context.Context, taskID string) (int, error) {
	docs, err := s.client.Collection(commentsCollection).
		Where("taskid", "==", taskID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *Firestore) SetTaskCommentCount(ctx context.Context, taskID string, count int, lastCommentAt *time.Time) error {
	updates := []firestore.Update{
		{Path: "commentcount", Value: count},
	}
	if lastCommentAt != nil {
		updates = append(updates, firestore.Update{Path: "lastcommentat", Value: *lastCommentAt})
	}
	_, err := s.client.Collection(tasksCollection).Doc(taskID).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (s *Firestore) UpdateUserStats(ctx context.Context, userID string, apply func(*model.UserStats)) error {
	userDocRef := s.client.Collection(usersCollection).Doc(userID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(userDocRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return err
		}
		apply(&user.Stats)
		return tx.Update(userDocRef, []firestore.Update{
			{Path: "stats", Value: user.Stats},
		})
	})
}

func (s *Firestore) PutNotification(ctx context.Context, n model.Notification) error {
	_, err := s.client.Collection(notificationsCollection).Doc(n.NotificationID).Set(ctx, n)
	return err
}

func (s *Firestore) AppendActivity(ctx context.Context, a model.Activity) error {
	_, err := s.client.Collection(activitiesCollection).Doc(a.ActivityID).Set(ctx, a)
	return err
}

func collectTasks(iter *firestore.DocumentIterator) ([]model.Task, error) {
	defer iter.Stop()

	var tasks []model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, err
		}
		task.TaskID = doc.Ref.ID
		tasks = append(tasks, task)
	}
	return tasks, nil
}
