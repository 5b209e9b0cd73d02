package burnjobs

import (
	"context"

	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/google/uuid"
)

type Repository interface {
	CreateJob(ctx context.Context, job *models.BurnJob) (*models.BurnJob, error)
	GetJobByID(ctx context.Context, jobID string) (*models.BurnJob, error)
	GetJobs(ctx context.Context, userID uuid.UUID, pagination *utils.Pagination) (*models.BurnJobList, error)
	UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, errorText string) error
	SetJobOutput(ctx context.Context, jobID string, outputKey string) error
	DeleteJob(ctx context.Context, userID uuid.UUID, jobID string) error
}
