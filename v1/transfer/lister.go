package transfer

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectLister yields the object keys to transfer. Implementations send
// keys on the returned channel and close it when the listing is
// complete; a listing failure is reported through the error channel.
type ObjectLister interface {
	ListKeys(ctx context.Context, bucket, prefix string) (<-chan string, <-chan error)
}

// MinioLister lists keys from an S3-compatible store.
type MinioLister struct {
	client *minio.Client
}

// NewMinioLister connects to the object store described by cfg.
func NewMinioLister(cfg *Config) (*MinioLister, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("transfer: missing TRANSFER_S3_ENDPOINT")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("transfer: connect to object store: %w", err)
	}
	return &MinioLister{client: client}, nil
}

// ListKeys streams all object keys under prefix. Directory placeholder
// keys (trailing slash) are skipped.
func (l *MinioLister) ListKeys(ctx context.Context, bucket, prefix string) (<-chan string, <-chan error) {
	keys := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(keys)
		defer close(errs)

		objects := l.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
		})
		for obj := range objects {
			if obj.Err != nil {
				errs <- fmt.Errorf("transfer: list objects: %w", obj.Err)
				return
			}
			if len(obj.Key) == 0 || obj.Key[len(obj.Key)-1] == '/' {
				continue
			}
			select {
			case keys <- obj.Key:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return keys, errs
}
