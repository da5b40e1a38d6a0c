// Package s3 publishes merged documents to an S3-compatible object store.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bradhe/stopwatch"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pdfmerger/config"
)

const contentType = "application/pdf"

// ErrNotFound is returned by Download when the key does not exist.
var ErrNotFound = errors.New("s3: object not found")

// Client uploads and downloads merged documents in a single bucket.
type Client struct {
	minio  *minio.Client
	bucket string
	logger *slog.Logger
}

// New creates a client for the configured endpoint and bucket.
func New(cfg *config.StorageConfig, logger *slog.Logger) (*Client, error) {
	if cfg.Host() == "" {
		return nil, fmt.Errorf("endpoint required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket required")
	}

	mc, err := minio.New(cfg.Host(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure(),
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Client{
		minio:  mc,
		bucket: cfg.Bucket,
		logger: logger.With("component", "s3", "bucket", cfg.Bucket, "endpoint", cfg.Host()),
	}, nil
}

// Upload stores the file at filePath under key.
func (c *Client) Upload(ctx context.Context, key, filePath string) error {
	watch := stopwatch.Start()

	info, err := c.minio.FPutObject(ctx, c.bucket, key, filePath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	watch.Stop()
	c.logger.Info("object uploaded", "key", key, "size", info.Size, "elapsed_ms", watch.Milliseconds())
	return nil
}

// Download returns the object stored under key.
func (c *Client) Download(ctx context.Context, key string) ([]byte, error) {
	watch := stopwatch.Start()

	obj, err := c.minio.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	watch.Stop()
	c.logger.Info("object downloaded", "key", key, "size", len(data), "elapsed_ms", watch.Milliseconds())
	return data, nil
}
