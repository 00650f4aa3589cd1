package export

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// GCSArchiver stores exported workbooks in a Cloud Storage bucket.
type GCSArchiver struct {
	client *storage.Client
	bucket string
}

func NewGCSArchiver(client *storage.Client, bucket string) *GCSArchiver {
	return &GCSArchiver{client: client, bucket: bucket}
}

func (a *GCSArchiver) Upload(ctx context.Context, object, contentType string, data []byte) (string, error) {
	w := a.client.Bucket(a.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing object: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing object writer: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, object), nil
}
