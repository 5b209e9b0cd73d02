package burnjobs

import (
	"context"
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type AWSRepository interface {
	GetPresignedPutURL(ctx context.Context, input *models.UploadInput) (string, error)
	GetPresignedGetURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
	PutObject(ctx context.Context, input models.UploadInput) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error)
	RemoveObject(ctx context.Context, bucket, key string) error
}
