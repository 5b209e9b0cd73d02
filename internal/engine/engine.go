package engine

import (
	"bufio"
	"context"
	"os/exec"
	"sync"

	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/pkg/errors"
)

// ErrUnavailable reports that the engine binary could not be located. This
// is a setup failure: callers surface it and do not retry.
var ErrUnavailable = errors.New("transcoding engine unavailable")

// Engine is one invocation handle around the external transcoder. Execution
// is long-running; log lines and fractional progress arrive through the
// registered callbacks, not return values.
type Engine interface {
	Available() error
	Exec(ctx context.Context, args []string) error
	OnLog(fn func(line string))
	OnProgress(fn func(ratio float64))
}

// FFmpeg runs jobs through the ffmpeg binary. Construct it once and inject
// it; the binary lookup is lazy and memoized.
type FFmpeg struct {
	cfg    *config.Config
	logger logger.Logger

	path       string
	lookupOnce sync.Once
	lookupErr  error

	limiter *cpuLimiter

	mu         sync.Mutex
	logFn      func(line string)
	progressFn func(ratio float64)
}

func NewFFmpeg(cfg *config.Config, log logger.Logger) *FFmpeg {
	return &FFmpeg{
		cfg:     cfg,
		logger:  log,
		limiter: newCPULimiter(cfg.Container, log),
	}
}

// Available resolves the engine binary on first use.
func (e *FFmpeg) Available() error {
	e.lookupOnce.Do(func() {
		path := e.cfg.Engine.FFmpegPath
		if path == "" {
			found, err := exec.LookPath("ffmpeg")
			if err != nil {
				e.lookupErr = errors.Wrap(ErrUnavailable, err.Error())
				return
			}
			path = found
		}
		e.path = path
	})
	return e.lookupErr
}

func (e *FFmpeg) OnLog(fn func(line string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logFn = fn
}

func (e *FFmpeg) OnProgress(fn func(ratio float64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progressFn = fn
}

// Exec runs one job to completion. A non-zero exit is returned as an error;
// there is no cancellation once started other than the context killing the
// process outright.
func (e *FFmpeg) Exec(ctx context.Context, args []string) error {
	if err := e.Available(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, e.path, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.Wrap(err, "engine stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "engine start")
	}

	release := e.limiter.Apply(cmd.Process.Pid)
	defer release()

	tracker := newProgressTracker()
	scanner := bufio.NewScanner(stderr)
	scanner.Split(scanStatusLines)
	for scanner.Scan() {
		line := scanner.Text()
		e.emitLog(line)
		if ratio, ok := tracker.Observe(line); ok {
			e.emitProgress(ratio)
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errors.Wrapf(err, "engine exited with status %d", exitErr.ExitCode())
		}
		return errors.Wrap(err, "engine execution")
	}
	e.emitProgress(1)
	return nil
}

func (e *FFmpeg) emitLog(line string) {
	e.mu.Lock()
	fn := e.logFn
	e.mu.Unlock()
	if fn != nil {
		fn(line)
	}
}

func (e *FFmpeg) emitProgress(ratio float64) {
	e.mu.Lock()
	fn := e.progressFn
	e.mu.Unlock()
	if fn != nil {
		fn(ratio)
	}
}
