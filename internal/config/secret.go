package config

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretName expands a bare secret id to its latest version in projectID.
// Fully qualified names are returned unchanged.
func SecretName(projectID, secret string) string {
	if strings.HasPrefix(secret, "projects/") {
		return secret
	}

	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secret)
}

// ResolveSecret reads a secret payload from Secret Manager.
func ResolveSecret(ctx context.Context, projectID, secret string, opts ...option.ClientOption) (string, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: SecretName(projectID, secret),
	})
	if err != nil {
		return "", fmt.Errorf("accessing secret %s: %w", secret, err)
	}

	return strings.TrimSpace(string(res.GetPayload().GetData())), nil
}

// SendGridKey returns the SendGrid API key, preferring Secret Manager when a
// secret name is configured.
func (c *Config) SendGridKey(ctx context.Context, opts ...option.ClientOption) (string, error) {
	if c.SendGrid.APIKeySecret == "" {
		return c.SendGrid.APIKey, nil
	}

	return ResolveSecret(ctx, c.Firestore.ProjectID, c.SendGrid.APIKeySecret, opts...)
}
