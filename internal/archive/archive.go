// Package archive optionally persists redacted contract text and analysis
// results to S3-compatible storage. The archive is best-effort: it never
// fails an analysis.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type Archive struct {
	client *minio.Client
	bucket string
}

func New(cfg Config) (*Archive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}
	return &Archive{client: client, bucket: cfg.Bucket}, nil
}

// StoreAnalysis uploads the redacted document text and the result JSON under
// a timestamped prefix keyed by the result ID.
func (a *Archive) StoreAnalysis(ctx context.Context, resultID string, redactedText, resultJSON []byte) error {
	prefix := fmt.Sprintf("analyses/%s/%s", time.Now().UTC().Format("2006-01-02"), resultID)

	if err := a.put(ctx, prefix+"/document.txt", redactedText, "text/plain"); err != nil {
		return err
	}
	return a.put(ctx, prefix+"/result.json", resultJSON, "application/json")
}

func (a *Archive) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("archive upload failed for %s: %w", key, err)
	}
	return nil
}
