// Package minio fetches raw videos from S3-compatible object storage,
// for corpora too large to keep on the worker's disk.
package minio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type Source struct {
	client  *miniogo.Client
	bucket  string
	tempDir string
	exts    []string
	logger  *zap.Logger
}

type SourceConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	TempDir   string
	Exts      []string
}

func NewSource(cfg SourceConfig, logger *zap.Logger) (*Source, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Source{
		client:  client,
		bucket:  cfg.Bucket,
		tempDir: cfg.TempDir,
		exts:    cfg.Exts,
		logger:  logger,
	}, nil
}

// EnsureBucket verifies the input bucket exists. It is never created:
// raw videos are an input, not something this tool provisions.
func (s *Source) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// ResolveVideo downloads <video_id>.<ext> into the temp dir and returns
// the local path. The cleanup func removes the downloaded copy.
func (s *Source) ResolveVideo(ctx context.Context, videoID string) (string, func(), error) {
	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}

	for _, ext := range s.exts {
		key := videoID + "." + ext
		if _, err := s.client.StatObject(ctx, s.bucket, key, miniogo.StatObjectOptions{}); err != nil {
			if isNotFound(err) {
				continue
			}
			return "", nil, fmt.Errorf("stat %s/%s: %w", s.bucket, key, err)
		}

		dest := filepath.Join(s.tempDir, key)
		if err := s.client.FGetObject(ctx, s.bucket, key, dest, miniogo.GetObjectOptions{}); err != nil {
			return "", nil, fmt.Errorf("download %s/%s: %w", s.bucket, key, err)
		}
		s.logger.Debug("downloaded raw video",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
		)
		return dest, func() { _ = os.Remove(dest) }, nil
	}
	return "", nil, fmt.Errorf("no raw video for %q in bucket %s (tried %v)", videoID, s.bucket, s.exts)
}

// isNotFound reports whether err means the object does not exist, as
// opposed to a transient network or auth failure that must surface.
func isNotFound(err error) bool {
	return miniogo.ToErrorResponse(err).Code == "NoSuchKey"
}
