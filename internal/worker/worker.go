package worker

import (
	"context"
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/burnjobs"
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/engine"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
)

const defaultPollInterval = 5 * time.Second

// Worker polls the queue and runs claimed jobs one at a time. Intake is
// gated on CPU usage so a busy host stops claiming new work.
type Worker struct {
	cfg       *config.Config
	logger    logger.Logger
	redisRepo burnjobs.RedisRepository
	processor *Processor
	engine    engine.Engine
}

func NewWorker(
	cfg *config.Config,
	log logger.Logger,
	eng engine.Engine,
	redisRepo burnjobs.RedisRepository,
	processor *Processor,
) *Worker {
	return &Worker{
		cfg:       cfg,
		logger:    log,
		redisRepo: redisRepo,
		processor: processor,
		engine:    eng,
	}
}

// Run blocks until the context is cancelled. An unavailable engine is a
// setup failure and returns immediately; per-job failures are written to
// the job record and the loop keeps going.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.engine.Available(); err != nil {
		return err
	}
	w.logger.Infof("worker started, polling queue %q", w.cfg.Redis.JobQueueKey)

	ticker := time.NewTicker(w.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopping")
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	if ok, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !ok {
		w.logger.Infof("skipping intake, CPU usage %.1f%% over limit", usage)
		return
	}

	job, err := w.redisRepo.PeekJob(ctx, w.cfg.Redis.JobQueueKey)
	if err != nil {
		w.logger.Errorf("queue poll failed: %v", err)
		return
	}
	if job == nil {
		return
	}

	w.logger.Infof("claimed job %s (input %s, %d bytes)", job.JobID, job.InputS3Key, job.FileSize)
	if err := w.processor.Process(ctx, job); err != nil {
		w.logger.Errorf("job %s failed: %v", job.JobID, err)
	}
	if err := w.redisRepo.ReleaseJob(ctx, job.JobID); err != nil {
		w.logger.Warnf("releasing job %s: %v", job.JobID, err)
	}
}

func (w *Worker) pollInterval() time.Duration {
	if w.cfg.Worker.PollInterval > 0 {
		return time.Duration(w.cfg.Worker.PollInterval) * time.Second
	}
	return defaultPollInterval
}
