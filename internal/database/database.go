package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Options returns the client options shared by every Google client.
func Options(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}

	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func New(ctx context.Context, projectID string, opts ...option.ClientOption) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return client, nil
}

// Auth returns the Firebase Auth client used to verify ID tokens.
func Auth(ctx context.Context, projectID string, opts ...option.ClientOption) (*fbauth.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating firebase auth client: %w", err)
	}

	return client, nil
}
