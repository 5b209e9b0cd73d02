package burnjobs

import (
	"context"

	"github.com/Zixzorash/BURN-SUB/internal/models"
)

type RedisRepository interface {
	EnqueueJob(ctx context.Context, key string, job *models.BurnJob) error
	PeekJob(ctx context.Context, key string) (*models.BurnJob, error)
	ReleaseJob(ctx context.Context, jobID string) error

	UpdateProgress(ctx context.Context, jobID string, progress float64) error
	UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error
	GetJobStatus(ctx context.Context, jobID string) (models.JobStatus, float64, error)
}
