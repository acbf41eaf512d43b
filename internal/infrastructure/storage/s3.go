package storage

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"filestore-api/config"
	"filestore-api/internal/application/ports"
)

// S3 keeps content in an S3-compatible object store under the same
// contract as the local backend.
type S3 struct {
	logger *zap.Logger
	client *minio.Client
	bucket string
}

func NewS3(ctx context.Context, logger *zap.Logger, cfg config.Storage) (*S3, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.S3Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.S3Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	logger.Info("s3 storage connected successfully", zap.String("bucket", cfg.S3Bucket))

	return &S3{logger: logger, client: client, bucket: cfg.S3Bucket}, nil
}

func (s *S3) Get(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, id.String(), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *S3) Save(ctx context.Context, id uuid.UUID, src io.Reader) (int64, error) {
	// Size -1 makes minio stream in parts without buffering the whole
	// object.
	info, err := s.client.PutObject(ctx, s.bucket, id.String(), src, -1, minio.PutObjectOptions{
		PartSize: chunkSize * 1024,
	})
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

func (s *S3) Erase(ctx context.Context, id uuid.UUID) error {
	return s.client.RemoveObject(ctx, s.bucket, id.String(), minio.RemoveObjectOptions{})
}

var _ ports.ByteStorage = (*S3)(nil)
