package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/go-redis/redis/v8"
)

const (
	progressKeyPrefix = "burn:progress:"
	lockKeyPrefix     = "burn:lock:"
	jobLockTTL        = 30 * time.Minute
)

type burnJobsRedisRepo struct {
	redisClient *redis.Client
	logger      logger.Logger
}

func NewBurnJobsRedisRepo(redisClient *redis.Client, log logger.Logger) burnjobs.RedisRepository {
	return &burnJobsRedisRepo{
		redisClient: redisClient,
		logger:      log,
	}
}

func (r *burnJobsRedisRepo) EnqueueJob(ctx context.Context, key string, job *models.BurnJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := r.redisClient.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	pipe := r.redisClient.Pipeline()
	pipe.HSet(ctx, progressKeyPrefix+job.JobID, "status", string(models.JobStatusQueued))
	pipe.HSet(ctx, progressKeyPrefix+job.JobID, "progress", 0)
	_, err = pipe.Exec(ctx)
	return err
}

// PeekJob claims the oldest unlocked job. The claim is a SetNX lock so a
// crashed worker releases the job once the TTL lapses.
func (r *burnJobsRedisRepo) PeekJob(ctx context.Context, key string) (*models.BurnJob, error) {
	length, err := r.redisClient.LLen(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get queue length: %w", err)
	}
	if length == 0 {
		return nil, nil
	}

	entries, err := r.redisClient.LRange(ctx, key, 0, length-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	for _, entry := range entries {
		job, err := decodeJob(entry)
		if err != nil {
			// drop the poison entry, otherwise it gets re-scanned forever
			r.logger.Warnf("dropping undecodable queue entry: %v", err)
			r.redisClient.LRem(ctx, key, 1, entry)
			continue
		}

		locked, err := r.redisClient.SetNX(ctx, lockKeyPrefix+job.JobID, 1, jobLockTTL).Result()
		if err != nil || !locked {
			continue
		}

		if err := r.redisClient.LRem(ctx, key, 1, entry).Err(); err != nil {
			r.redisClient.Del(ctx, lockKeyPrefix+job.JobID)
			return nil, fmt.Errorf("failed to remove job from queue: %w", err)
		}

		now := time.Now()
		job.Status = models.JobStatusProcessing
		job.StartedAt = &now
		return job, nil
	}

	return nil, nil
}

func decodeJob(entry string) (*models.BurnJob, error) {
	job := &models.BurnJob{}
	if err := json.Unmarshal([]byte(entry), job); err != nil {
		return nil, fmt.Errorf("decode queued job: %w", err)
	}
	if job.JobID == "" {
		return nil, fmt.Errorf("decode queued job: missing job_id")
	}
	return job, nil
}

func (r *burnJobsRedisRepo) ReleaseJob(ctx context.Context, jobID string) error {
	return r.redisClient.Del(ctx, lockKeyPrefix+jobID).Err()
}

func (r *burnJobsRedisRepo) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	if err := r.redisClient.HSet(ctx, progressKeyPrefix+jobID, "progress", progress).Err(); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

func (r *burnJobsRedisRepo) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	if err := r.redisClient.HSet(ctx, progressKeyPrefix+jobID, "status", string(status)).Err(); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

func (r *burnJobsRedisRepo) GetJobStatus(ctx context.Context, jobID string) (models.JobStatus, float64, error) {
	values, err := r.redisClient.HGetAll(ctx, progressKeyPrefix+jobID).Result()
	if err != nil {
		return "", 0, fmt.Errorf("failed to get job status: %w", err)
	}
	if len(values) == 0 {
		return "", 0, redis.Nil
	}

	var progress float64
	if raw, ok := values["progress"]; ok {
		fmt.Sscanf(raw, "%f", &progress)
	}
	return models.JobStatus(values["status"]), progress, nil
}
