package model

import (
	"time"
)

type Comment struct {
	CommentID string    `firestore:"commentid,omitempty" json:"commentId"`
	TaskID    string    `firestore:"taskid,omitempty" json:"taskId"`
	UserID    string    `firestore:"userid,omitempty" json:"userId"`
	UserName  string    `firestore:"username,omitempty" json:"userName"`
	Mentions  []string  `firestore:"mentions,omitempty" json:"mentions,omitempty"`
	Message   string    `firestore:"message,omitempty" json:"message"`
	CreatedAt time.Time `firestore:"createdat,omitempty" json:"createdAt"`
}
