package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/go-redis/redis/v8"
)

const resultURLExpiry = time.Hour

type burnJobsUC struct {
	cfg       *config.Config
	jobsRepo  burnjobs.Repository
	redisRepo burnjobs.RedisRepository
	awsRepo   burnjobs.AWSRepository
	logger    logger.Logger
}

func NewBurnJobsUseCase(
	cfg *config.Config,
	jobsRepo burnjobs.Repository,
	redisRepo burnjobs.RedisRepository,
	awsRepo burnjobs.AWSRepository,
	log logger.Logger,
) burnjobs.UseCase {
	return &burnJobsUC{
		cfg:       cfg,
		jobsRepo:  jobsRepo,
		redisRepo: redisRepo,
		awsRepo:   awsRepo,
		logger:    log,
	}
}

func (u *burnJobsUC) GetPresignUrl(ctx context.Context, input *models.UploadInput) (string, error) {
	if input == nil {
		return "", fmt.Errorf("invalid input: input is nil")
	}

	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		u.logger.Errorf("GetPresignUrl - GetUserFromCtx error: %v", err)
		return "", err
	}

	if err = utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("GetPresignUrl - ValidateStruct error: %v", err)
		return "", err
	}

	input.BucketName = u.cfg.S3.InputBucket
	input.Key = fmt.Sprintf("uploads/%s/%s", user.UserID, input.Name)

	u.logger.Infof("Generating presigned upload url for key: %s", input.Key)
	url, err := u.awsRepo.GetPresignedPutURL(ctx, input)
	if err != nil {
		u.logger.Errorf("GetPresignUrl - GetPresignedPutURL error: %v", err)
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return url, nil
}

func (u *burnJobsUC) CreateJob(ctx context.Context, input *models.BurnJobInput) (*models.BurnJob, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		u.logger.Errorf("CreateJob - GetUserFromCtx error: %v", err)
		return nil, err
	}
	if err = utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("CreateJob - ValidateStruct error: %v", err)
		return nil, fmt.Errorf("invalid input: %v", err)
	}

	jobID := models.NewJobID()
	job := &models.BurnJob{
		JobID:        jobID,
		UserID:       user.UserID.String(),
		InputS3Key:   fmt.Sprintf("uploads/%s/%s", user.UserID, input.FileName),
		InputBucket:  u.cfg.S3.InputBucket,
		OutputS3Key:  fmt.Sprintf("outputs/%s/%s/%s", user.UserID, jobID, input.OutputName),
		OutputBucket: u.cfg.S3.OutputBucket,
		OutputName:   input.OutputName,
		FileSize:     input.FileSize,
		FrameRate:    input.FrameRate,
		Style:        input.Style,
		Status:       models.JobStatusQueued,
	}
	if input.SubtitleName != "" {
		job.SubtitleKey = fmt.Sprintf("uploads/%s/%s", user.UserID, input.SubtitleName)
	}

	job, err = u.jobsRepo.CreateJob(ctx, job)
	if err != nil {
		u.logger.Errorf("CreateJob - CreateJob error: %v", err)
		return nil, fmt.Errorf("failed to create job: %v", err)
	}

	if err = u.redisRepo.EnqueueJob(ctx, u.cfg.Redis.JobQueueKey, job); err != nil {
		u.logger.Errorf("CreateJob - EnqueueJob error: %v", err)
		return nil, fmt.Errorf("failed to queue the job: %v", err)
	}
	return job, nil
}

func (u *burnJobsUC) GetJob(ctx context.Context, jobID string) (*models.BurnJob, error) {
	job, err := u.ownedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	// Overlay live status and progress from the worker; the row lags while
	// a job is running.
	status, progress, err := u.redisRepo.GetJobStatus(ctx, jobID)
	if err == nil && status != "" {
		job.Status = status
		job.Progress = progress
	} else if err != nil && !errors.Is(err, redis.Nil) {
		u.logger.Warnf("GetJob - GetJobStatus error: %v", err)
	}
	return job, nil
}

func (u *burnJobsUC) GetResult(ctx context.Context, jobID string) (*models.BurnResult, error) {
	job, err := u.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusCompleted {
		return nil, fmt.Errorf("job %s is not completed (status: %s)", jobID, job.Status)
	}

	url, err := u.awsRepo.GetPresignedGetURL(ctx, job.OutputBucket, job.OutputS3Key, resultURLExpiry)
	if err != nil {
		u.logger.Errorf("GetResult - GetPresignedGetURL error: %v", err)
		return nil, fmt.Errorf("failed to generate download URL: %v", err)
	}
	return &models.BurnResult{
		JobID:       jobID,
		DownloadURL: url,
		ExpiresAt:   time.Now().Add(resultURLExpiry),
	}, nil
}

func (u *burnJobsUC) ListJobs(ctx context.Context, pagination *utils.Pagination) (*models.BurnJobList, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		u.logger.Errorf("ListJobs - GetUserFromCtx error: %v", err)
		return nil, err
	}
	if pagination == nil {
		pagination = &utils.Pagination{Page: 1, Size: 10}
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Size < 1 || pagination.Size > 100 {
		pagination.Size = 10
	}
	jobs, err := u.jobsRepo.GetJobs(ctx, user.UserID, pagination)
	if err != nil {
		u.logger.Errorf("ListJobs - GetJobs error: %v", err)
		return nil, fmt.Errorf("failed to fetch jobs: %v", err)
	}
	return jobs, nil
}

func (u *burnJobsUC) DeleteJob(ctx context.Context, jobID string) error {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return err
	}
	job, err := u.ownedJob(ctx, jobID)
	if err != nil {
		return err
	}

	// Stored objects go first; a dangling row is recoverable, orphaned
	// blobs are not.
	if job.OutputS3Key != "" {
		if err := u.awsRepo.RemoveObject(ctx, job.OutputBucket, job.OutputS3Key); err != nil {
			u.logger.Warnf("DeleteJob - RemoveObject output %s: %v", job.OutputS3Key, err)
		}
	}
	if err := u.awsRepo.RemoveObject(ctx, job.InputBucket, job.InputS3Key); err != nil {
		u.logger.Warnf("DeleteJob - RemoveObject input %s: %v", job.InputS3Key, err)
	}

	if err := u.jobsRepo.DeleteJob(ctx, user.UserID, jobID); err != nil {
		u.logger.Errorf("DeleteJob - DeleteJob error: %v", err)
		return fmt.Errorf("failed to delete job: %v", err)
	}
	return nil
}

func (u *burnJobsUC) ownedJob(ctx context.Context, jobID string) (*models.BurnJob, error) {
	user, err := utils.GetUserFromCtx(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %v", err)
	}
	job, err := u.jobsRepo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job not found")
		}
		u.logger.Errorf("GetJobByID error: %v", err)
		return nil, fmt.Errorf("failed to fetch job: %v", err)
	}
	if job.UserID != user.UserID.String() {
		u.logger.Warnf("User %s is not authorized to access job %s", user.UserID, jobID)
		return nil, fmt.Errorf("unauthorized access to job")
	}
	return job, nil
}
