package worker

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/engine"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/internal/subtitles"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/pkg/errors"
)

// Processor runs one burn job end to end: stage inputs, assemble the
// engine arguments, execute, extract the output to the output bucket.
// Staged files are cleaned up whether the job succeeds or fails.
type Processor struct {
	cfg       *config.Config
	logger    logger.Logger
	engine    engine.Engine
	jobsRepo  burnjobs.Repository
	redisRepo burnjobs.RedisRepository
	awsRepo   burnjobs.AWSRepository

	// newWorkspace is swappable so tests can count staging calls.
	newWorkspace func(root string, staging config.StagingConfig) (*Workspace, error)
}

func NewProcessor(
	cfg *config.Config,
	log logger.Logger,
	eng engine.Engine,
	jobsRepo burnjobs.Repository,
	redisRepo burnjobs.RedisRepository,
	awsRepo burnjobs.AWSRepository,
) *Processor {
	return &Processor{
		cfg:          cfg,
		logger:       log,
		engine:       eng,
		jobsRepo:     jobsRepo,
		redisRepo:    redisRepo,
		awsRepo:      awsRepo,
		newWorkspace: NewWorkspace,
	}
}

// Process executes one claimed job. The returned error is also written
// into the job record; callers do not retry.
func (p *Processor) Process(ctx context.Context, job *models.BurnJob) error {
	start := time.Now()
	p.markStarted(ctx, job.JobID)

	err := p.run(ctx, job)
	if err != nil {
		p.markFailed(ctx, job.JobID, err, time.Since(start))
		return err
	}
	p.markCompleted(ctx, job.JobID, time.Since(start))
	return nil
}

func (p *Processor) run(ctx context.Context, job *models.BurnJob) error {
	if err := p.engine.Available(); err != nil {
		return err
	}

	ws, err := p.newWorkspace(filepath.Join(p.cfg.Worker.WorkDir, job.JobID), p.cfg.Staging)
	if err != nil {
		return err
	}
	defer ws.Cleanup()

	inputPath, inputSize, err := p.stageObject(ctx, ws, job.InputBucket, job.InputS3Key)
	if err != nil {
		return err
	}
	if inputSize != job.FileSize {
		p.logger.Warnf("job %s: declared size %d, spooled %d bytes", job.JobID, job.FileSize, inputSize)
	}

	var subtitlePath string
	if job.SubtitleKey != "" {
		spooled, _, err := p.spoolObject(ctx, ws, job.InputBucket, job.SubtitleKey)
		if err != nil {
			return err
		}
		if subtitlePath, err = ws.StageSubtitle(spooled); err != nil {
			return err
		}
	}

	outputPath := ws.OutputPath(job.OutputName)
	args := BuildArgs(BurnArgs{
		InputPath:    inputPath,
		SubtitlePath: subtitlePath,
		OutputPath:   outputPath,
		ForceStyle:   subtitles.ForceStyle(job.Style),
		FrameRate:    job.FrameRate,
		InputSize:    inputSize,
	}, p.cfg.Staging)

	p.engine.OnLog(func(line string) {
		p.logger.Debugf("engine [%s]: %s", job.JobID, line)
	})
	p.engine.OnProgress(func(ratio float64) {
		if err := p.redisRepo.UpdateProgress(ctx, job.JobID, ratio); err != nil {
			p.logger.Warnf("progress update failed for job %s: %v", job.JobID, err)
		}
	})

	p.logger.Infof("running engine for job %s: %v", job.JobID, args)
	if err := p.engine.Exec(ctx, args); err != nil {
		return err
	}

	return p.extract(ctx, job, outputPath)
}

// stageObject downloads the job input into the workspace spool and stages
// it under its fixed name. The spooled byte count, not the size the client
// declared, drives the staging plan and the encode tier.
func (p *Processor) stageObject(ctx context.Context, ws *Workspace, bucket, key string) (string, int64, error) {
	spooled, size, err := p.spoolObject(ctx, ws, bucket, key)
	if err != nil {
		return "", 0, err
	}
	staged, err := ws.StageInput(spooled, size)
	if err != nil {
		return "", 0, err
	}
	return staged, size, nil
}

func (p *Processor) spoolObject(ctx context.Context, ws *Workspace, bucket, key string) (string, int64, error) {
	obj, err := p.awsRepo.GetObject(ctx, bucket, key)
	if err != nil {
		return "", 0, errors.Wrapf(err, "download %s", key)
	}
	defer obj.Body.Close()
	return ws.Spool(filepath.Base(key), obj.Body)
}

// extract reads the produced output back from the workspace and uploads it
// to the output bucket.
func (p *Processor) extract(ctx context.Context, job *models.BurnJob, outputPath string) error {
	out, err := os.Open(outputPath)
	if err != nil {
		return errors.Wrap(ErrOutputUnreadable, err.Error())
	}
	defer out.Close()

	info, err := out.Stat()
	if err != nil {
		return errors.Wrap(ErrOutputUnreadable, err.Error())
	}

	_, err = p.awsRepo.PutObject(ctx, models.UploadInput{
		File:       out,
		Name:       job.OutputName,
		MimeType:   "video/mp4",
		Size:       info.Size(),
		Key:        job.OutputS3Key,
		BucketName: job.OutputBucket,
	})
	if err != nil {
		return errors.Wrapf(err, "upload output %s", job.OutputS3Key)
	}
	return p.jobsRepo.SetJobOutput(ctx, job.JobID, job.OutputS3Key)
}

func (p *Processor) markStarted(ctx context.Context, jobID string) {
	if err := p.jobsRepo.UpdateJobStatus(ctx, jobID, models.JobStatusProcessing, ""); err != nil {
		p.logger.Warnf("status update failed for job %s: %v", jobID, err)
	}
	if err := p.redisRepo.UpdateStatus(ctx, jobID, models.JobStatusProcessing); err != nil {
		p.logger.Warnf("status update failed for job %s: %v", jobID, err)
	}
}

func (p *Processor) markCompleted(ctx context.Context, jobID string, elapsed time.Duration) {
	if err := p.jobsRepo.UpdateJobStatus(ctx, jobID, models.JobStatusCompleted, ""); err != nil {
		p.logger.Warnf("status update failed for job %s: %v", jobID, err)
	}
	if err := p.redisRepo.UpdateStatus(ctx, jobID, models.JobStatusCompleted); err != nil {
		p.logger.Warnf("status update failed for job %s: %v", jobID, err)
	}
	if err := p.redisRepo.UpdateProgress(ctx, jobID, 1); err != nil {
		p.logger.Warnf("progress update failed for job %s: %v", jobID, err)
	}
	p.logger.Infof("job %s completed in %s", jobID, elapsed)
}

func (p *Processor) markFailed(ctx context.Context, jobID string, cause error, elapsed time.Duration) {
	if err := p.jobsRepo.UpdateJobStatus(ctx, jobID, models.JobStatusFailed, cause.Error()); err != nil {
		p.logger.Warnf("status update failed for job %s: %v", jobID, err)
	}
	if err := p.redisRepo.UpdateStatus(ctx, jobID, models.JobStatusFailed); err != nil {
		p.logger.Warnf("status update failed for job %s: %v", jobID, err)
	}
	p.logger.Errorf("job %s failed after %s: %v", jobID, elapsed, cause)
}
