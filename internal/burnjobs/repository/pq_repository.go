package repository

import (
	"context"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type burnJobsRepo struct {
	db *sqlx.DB
}

func NewBurnJobsRepo(db *sqlx.DB) burnjobs.Repository {
	return &burnJobsRepo{
		db: db,
	}
}

func (r *burnJobsRepo) CreateJob(ctx context.Context, job *models.BurnJob) (*models.BurnJob, error) {
	created := &models.BurnJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		createJobQuery,
		job.JobID,
		job.UserID,
		job.InputS3Key,
		job.InputBucket,
		job.SubtitleKey,
		job.OutputS3Key,
		job.OutputBucket,
		job.OutputName,
		job.FileSize,
		job.FrameRate,
		job.Style,
		job.Status,
	).StructScan(created); err != nil {
		return nil, errors.Wrap(err, "burnJobsRepo.CreateJob.StructScan")
	}
	return created, nil
}

func (r *burnJobsRepo) GetJobByID(ctx context.Context, jobID string) (*models.BurnJob, error) {
	job := &models.BurnJob{}
	if err := r.db.GetContext(ctx, job, getJobByIDQuery, jobID); err != nil {
		return nil, errors.Wrap(err, "burnJobsRepo.GetJobByID.GetContext")
	}
	return job, nil
}

func (r *burnJobsRepo) GetJobs(ctx context.Context, userID uuid.UUID, pagination *utils.Pagination) (*models.BurnJobList, error) {
	var totalCount int
	if err := r.db.GetContext(ctx, &totalCount, getTotalJobsByUserIDQuery, userID); err != nil {
		return nil, errors.Wrap(err, "burnJobsRepo.GetJobs.TotalCount")
	}
	if totalCount == 0 {
		return &models.BurnJobList{
			Jobs:       make([]*models.BurnJob, 0),
			TotalCount: 0,
			Page:       pagination.GetPage(),
			PageSize:   pagination.GetSize(),
			HasMore:    false,
		}, nil
	}

	rows, err := r.db.QueryxContext(ctx, getJobsByUserIDQuery, userID, pagination.GetOffset(), pagination.GetLimit())
	if err != nil {
		return nil, errors.Wrap(err, "burnJobsRepo.GetJobs.QueryxContext")
	}
	defer rows.Close()

	jobs := make([]*models.BurnJob, 0, pagination.GetSize())
	for rows.Next() {
		var job models.BurnJob
		if err = rows.StructScan(&job); err != nil {
			return nil, errors.Wrap(err, "burnJobsRepo.GetJobs.StructScan")
		}
		jobs = append(jobs, &job)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "burnJobsRepo.GetJobs.rows")
	}

	return &models.BurnJobList{
		Jobs:       jobs,
		TotalCount: totalCount,
		Page:       pagination.GetPage(),
		PageSize:   pagination.GetSize(),
		HasMore:    utils.GetHasMore(pagination.GetPage(), totalCount, pagination.GetSize()),
	}, nil
}

func (r *burnJobsRepo) UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, errorText string) error {
	if _, err := r.db.ExecContext(ctx, updateJobStatusQuery, jobID, status, errorText); err != nil {
		return errors.Wrap(err, "burnJobsRepo.UpdateJobStatus.ExecContext")
	}
	return nil
}

func (r *burnJobsRepo) SetJobOutput(ctx context.Context, jobID string, outputKey string) error {
	if _, err := r.db.ExecContext(ctx, setJobOutputQuery, jobID, outputKey); err != nil {
		return errors.Wrap(err, "burnJobsRepo.SetJobOutput.ExecContext")
	}
	return nil
}

func (r *burnJobsRepo) DeleteJob(ctx context.Context, userID uuid.UUID, jobID string) error {
	result, err := r.db.ExecContext(ctx, deleteJobQuery, jobID, userID)
	if err != nil {
		return errors.Wrap(err, "burnJobsRepo.DeleteJob.ExecContext")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "burnJobsRepo.DeleteJob.RowsAffected")
	}
	if affected == 0 {
		return errors.New("job not found")
	}
	return nil
}
