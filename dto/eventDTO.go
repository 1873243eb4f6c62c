package dto

import (
	"famplan/model"
)

// Envelopes the eventing platform posts to the trigger endpoints. Update
// events carry before/after snapshots; create/delete events carry the
// document as it was written or removed.

type TaskCreatedEvent struct {
	Task model.Task `json:"task" binding:"required"`
}

type TaskUpdatedEvent struct {
	Before *model.Task `json:"before"`
	After  *model.Task `json:"after"`
}

type CommentEvent struct {
	Comment model.Comment `json:"comment" binding:"required"`
}
