package burnjobs

import (
	"context"

	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
)

type UseCase interface {
	GetPresignUrl(ctx context.Context, input *models.UploadInput) (string, error)
	CreateJob(ctx context.Context, input *models.BurnJobInput) (*models.BurnJob, error)
	GetJob(ctx context.Context, jobID string) (*models.BurnJob, error)
	GetResult(ctx context.Context, jobID string) (*models.BurnResult, error)
	ListJobs(ctx context.Context, pagination *utils.Pagination) (*models.BurnJobList, error)
	DeleteJob(ctx context.Context, jobID string) error
}
