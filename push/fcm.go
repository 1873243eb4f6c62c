package push

import (
	"context"

	"firebase.google.com/go/messaging"
)

// FCM sends multicast pushes through Firebase Cloud Messaging.
type FCM struct {
	client *messaging.Client
}

func NewFCM(client *messaging.Client) *FCM {
	return &FCM{client: client}
}

func (f *FCM) Send(ctx context.Context, msg Message) (Result, error) {
	response, err := f.client.SendMulticast(ctx, &messaging.MulticastMessage{
		Tokens: msg.Tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{
		SuccessCount: response.SuccessCount,
		FailureCount: response.FailureCount,
	}, nil
}
