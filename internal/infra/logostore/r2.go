package logostore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/unievents/internal/domain/club"
)

// R2Storage stores logos in Cloudflare R2 or any S3 compatible bucket.
type R2Storage struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewR2Storage constructs the storage adapter.
func NewR2Storage(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*R2Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}
	return &R2Storage{client: client, bucket: bucket, logger: logger.With("component", "logostore.r2")}, nil
}

func (s *R2Storage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	s.logger.Info("logo bucket ready", "bucket", s.bucket)
	return nil
}

// Put uploads a logo as a single part object.
func (s *R2Storage) Put(ctx context.Context, key string, data []byte, contentType string) (club.StoredLogo, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return club.StoredLogo{}, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		CacheControl:     "public, max-age=300",
		DisableMultipart: true,
	})
	if err != nil {
		return club.StoredLogo{}, err
	}
	return club.StoredLogo{
		Key:         key,
		Size:        info.Size,
		ContentType: contentType,
		ETag:        info.ETag,
	}, nil
}

// Get opens a logo for reading. A missing object is reported as not found rather than an error.
func (s *R2Storage) Get(ctx context.Context, key string) (club.LogoObject, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return club.LogoObject{}, false, err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return club.LogoObject{}, false, nil
		}
		return club.LogoObject{}, false, err
	}
	return club.LogoObject{
		Body:        obj,
		ContentType: stat.ContentType,
		Size:        stat.Size,
		ETag:        stat.ETag,
	}, true, nil
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

var _ club.LogoStorage = (*R2Storage)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
