package services

import (
	"context"
	"time"

	"famplan/model"
	"famplan/push"
	"famplan/store"
)

type testEnv struct {
	Ctx      context.Context
	Store    *store.Memory
	Push     *push.Recorder
	Handlers *Handlers
}

var testNow = time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

func newTestEnv() testEnv {
	documents := store.NewMemory()
	documents.Now = func() time.Time { return testNow }
	sender := &push.Recorder{}

	now := func() time.Time { return testNow }
	fanout := &Fanout{Store: documents, Push: sender, BaseURL: "https://app.test", Now: now}
	stats := &Stats{Store: documents, Now: now}
	activity := &ActivityLog{Store: documents}

	return testEnv{
		Ctx:   context.Background(),
		Store: documents,
		Push:  sender,
		Handlers: &Handlers{
			Store:    documents,
			Fanout:   fanout,
			Stats:    stats,
			Activity: activity,
			Now:      now,
		},
	}
}

func (e testEnv) seedUser(userID string, tokens ...string) {
	e.Store.PutUser(model.User{UserID: userID, DisplayName: userID, FCMTokens: tokens})
}
