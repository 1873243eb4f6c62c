package connection

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// FBConnection initializes the Firebase app and returns the Firestore
// and Cloud Messaging clients. Both are constructed once here and passed
// down explicitly; nothing holds them as package globals.
func FBConnection(credentialsPath string) (*firestore.Client, *messaging.Client, error) {
	ctx := context.Background()

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing app: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting Messaging client: %w", err)
	}

	fmt.Println("Firebase connection successful")
	return firestoreClient, messagingClient, nil
}
