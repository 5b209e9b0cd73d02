package worker

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/models"
	"github.com/Zixzorash/BURN-SUB/pkg/utils"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) InitLogger()                          {}
func (nopLogger) Debug(args ...interface{})            {}
func (nopLogger) Debugf(t string, args ...interface{}) {}
func (nopLogger) Info(args ...interface{})             {}
func (nopLogger) Infof(t string, args ...interface{})  {}
func (nopLogger) Warn(args ...interface{})             {}
func (nopLogger) Warnf(t string, args ...interface{})  {}
func (nopLogger) Error(args ...interface{})            {}
func (nopLogger) Errorf(t string, args ...interface{}) {}
func (nopLogger) DPanic(args ...interface{})           {}
func (nopLogger) DPanicf(t string, a ...interface{})   {}
func (nopLogger) Fatal(args ...interface{})            {}
func (nopLogger) Fatalf(t string, args ...interface{}) {}

type fakeEngine struct {
	availErr error
	execErr  error
	onExec   func(args []string) error
	execArgs []string
}

func (f *fakeEngine) Available() error { return f.availErr }
func (f *fakeEngine) Exec(ctx context.Context, args []string) error {
	f.execArgs = args
	if f.onExec != nil {
		if err := f.onExec(args); err != nil {
			return err
		}
	}
	return f.execErr
}
func (f *fakeEngine) OnLog(fn func(string))       {}
func (f *fakeEngine) OnProgress(fn func(float64)) {}

type fakeJobsRepo struct {
	statuses   []models.JobStatus
	errorTexts []string
	outputKey  string
}

func (f *fakeJobsRepo) CreateJob(ctx context.Context, job *models.BurnJob) (*models.BurnJob, error) {
	return job, nil
}
func (f *fakeJobsRepo) GetJobByID(ctx context.Context, jobID string) (*models.BurnJob, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeJobsRepo) GetJobs(ctx context.Context, userID uuid.UUID, p *utils.Pagination) (*models.BurnJobList, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeJobsRepo) UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, errorText string) error {
	f.statuses = append(f.statuses, status)
	f.errorTexts = append(f.errorTexts, errorText)
	return nil
}
func (f *fakeJobsRepo) SetJobOutput(ctx context.Context, jobID, outputKey string) error {
	f.outputKey = outputKey
	return nil
}
func (f *fakeJobsRepo) DeleteJob(ctx context.Context, userID uuid.UUID, jobID string) error {
	return nil
}

type fakeRedisRepo struct {
	statuses []models.JobStatus
	progress []float64
	released []string
}

func (f *fakeRedisRepo) EnqueueJob(ctx context.Context, key string, job *models.BurnJob) error {
	return nil
}
func (f *fakeRedisRepo) PeekJob(ctx context.Context, key string) (*models.BurnJob, error) {
	return nil, nil
}
func (f *fakeRedisRepo) ReleaseJob(ctx context.Context, jobID string) error {
	f.released = append(f.released, jobID)
	return nil
}
func (f *fakeRedisRepo) UpdateProgress(ctx context.Context, jobID string, progress float64) error {
	f.progress = append(f.progress, progress)
	return nil
}
func (f *fakeRedisRepo) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}
func (f *fakeRedisRepo) GetJobStatus(ctx context.Context, jobID string) (models.JobStatus, float64, error) {
	return "", 0, nil
}

type fakeAWSRepo struct {
	getErr  error
	payload string
	putKeys []string
}

func (f *fakeAWSRepo) GetPresignedPutURL(ctx context.Context, input *models.UploadInput) (string, error) {
	return "", errors.New("not implemented")
}
func (f *fakeAWSRepo) GetPresignedGetURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	return "", errors.New("not implemented")
}
func (f *fakeAWSRepo) PutObject(ctx context.Context, input models.UploadInput) (*s3.PutObjectOutput, error) {
	f.putKeys = append(f.putKeys, input.Key)
	return &s3.PutObjectOutput{}, nil
}
func (f *fakeAWSRepo) GetObject(ctx context.Context, bucket, key string) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	payload := f.payload
	if payload == "" {
		payload = "payload"
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(payload))}, nil
}
func (f *fakeAWSRepo) RemoveObject(ctx context.Context, bucket, key string) error {
	return nil
}

func testJob() *models.BurnJob {
	return &models.BurnJob{
		JobID:        "job-1",
		UserID:       uuid.New().String(),
		InputS3Key:   "uploads/u/movie.mp4",
		InputBucket:  "input",
		SubtitleKey:  "uploads/u/movie.srt",
		OutputS3Key:  "outputs/u/job-1/burned.mp4",
		OutputBucket: "output",
		OutputName:   "burned.mp4",
		FileSize:     7,
		FrameRate:    24,
		Style: models.StyleSpec{
			FontSize:     24,
			PrimaryColor: "FFFFFF",
			OutlineColor: "000000",
			Alignment:    models.AlignmentBottom,
		},
	}
}

func newTestProcessor(t *testing.T, eng *fakeEngine) (*Processor, *fakeJobsRepo, *fakeRedisRepo, *fakeAWSRepo) {
	t.Helper()
	cfg := &config.Config{
		Worker: config.WorkerConfig{WorkDir: t.TempDir()},
		Staging: config.StagingConfig{
			LargeFileThreshold:  100,
			BufferedCopyCeiling: 1000,
		},
	}
	jobs := &fakeJobsRepo{}
	redisRepo := &fakeRedisRepo{}
	awsRepo := &fakeAWSRepo{}
	return NewProcessor(cfg, nopLogger{}, eng, jobs, redisRepo, awsRepo), jobs, redisRepo, awsRepo
}

func TestProcessSuccess(t *testing.T) {
	eng := &fakeEngine{
		onExec: func(args []string) error {
			// the engine writes its output to the final argument
			return os.WriteFile(args[len(args)-1], []byte("burned"), 0o644)
		},
	}
	p, jobs, redisRepo, awsRepo := newTestProcessor(t, eng)

	job := testJob()
	if err := p.Process(context.Background(), job); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(awsRepo.putKeys) != 1 || awsRepo.putKeys[0] != job.OutputS3Key {
		t.Errorf("uploaded keys = %v, want [%s]", awsRepo.putKeys, job.OutputS3Key)
	}
	if jobs.outputKey != job.OutputS3Key {
		t.Errorf("SetJobOutput key = %s, want %s", jobs.outputKey, job.OutputS3Key)
	}
	last := jobs.statuses[len(jobs.statuses)-1]
	if last != models.JobStatusCompleted {
		t.Errorf("final status = %s, want %s", last, models.JobStatusCompleted)
	}
	if n := len(redisRepo.progress); n == 0 || redisRepo.progress[n-1] != 1 {
		t.Errorf("expected final progress 1, got %v", redisRepo.progress)
	}
}

func TestProcessEngineFailureMarksJobFailed(t *testing.T) {
	eng := &fakeEngine{execErr: errors.New("engine exited with status 1")}
	p, jobs, _, awsRepo := newTestProcessor(t, eng)

	if err := p.Process(context.Background(), testJob()); err == nil {
		t.Fatal("expected an error from a failing engine")
	}

	last := jobs.statuses[len(jobs.statuses)-1]
	if last != models.JobStatusFailed {
		t.Errorf("final status = %s, want %s", last, models.JobStatusFailed)
	}
	lastText := jobs.errorTexts[len(jobs.errorTexts)-1]
	if !strings.Contains(lastText, "engine exited") {
		t.Errorf("error text = %q, want the engine diagnostic", lastText)
	}
	if len(awsRepo.putKeys) != 0 {
		t.Errorf("no upload expected on failure, got %v", awsRepo.putKeys)
	}
}

func TestProcessOutputUnreadable(t *testing.T) {
	// engine "succeeds" without producing the output file
	p, jobs, _, _ := newTestProcessor(t, &fakeEngine{})

	err := p.Process(context.Background(), testJob())
	if !errors.Is(err, ErrOutputUnreadable) {
		t.Fatalf("expected ErrOutputUnreadable, got %v", err)
	}
	last := jobs.statuses[len(jobs.statuses)-1]
	if last != models.JobStatusFailed {
		t.Errorf("final status = %s, want %s", last, models.JobStatusFailed)
	}
}

func TestProcessStagesByActualSizeNotDeclared(t *testing.T) {
	// A stored object bigger than the buffered-copy ceiling must be refused
	// when the mount fails, no matter what size the client declared.
	p, jobs, _, awsRepo := newTestProcessor(t, &fakeEngine{})
	awsRepo.payload = strings.Repeat("x", 5000) // ceiling is 1000

	copies := 0
	p.newWorkspace = func(root string, staging config.StagingConfig) (*Workspace, error) {
		ws, err := NewWorkspace(root, staging)
		if err != nil {
			return nil, err
		}
		ws.linkFn = func(_, _ string) error { return errors.New("cross-device link") }
		ws.copyFn = func(_, _ string) error { copies++; return nil }
		return ws, nil
	}

	job := testJob()
	job.FileSize = 50 // lies small

	err := p.Process(context.Background(), job)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	if copies != 0 {
		t.Errorf("copy fallback must not run over the ceiling, got %d copies", copies)
	}
	if last := jobs.statuses[len(jobs.statuses)-1]; last != models.JobStatusFailed {
		t.Errorf("final status = %s, want %s", last, models.JobStatusFailed)
	}
}

func TestProcessSmallObjectWithOversizedDeclarationStages(t *testing.T) {
	eng := &fakeEngine{
		onExec: func(args []string) error {
			return os.WriteFile(args[len(args)-1], []byte("burned"), 0o644)
		},
	}
	p, _, _, _ := newTestProcessor(t, eng)

	job := testJob()
	job.FileSize = 2000 // lies big; the object is 7 bytes

	if err := p.Process(context.Background(), job); err != nil {
		t.Fatalf("Process: %v", err)
	}
	// the 7-byte spool stays under the large-file threshold
	for _, arg := range eng.execArgs {
		if strings.Contains(arg, "scale=") {
			t.Errorf("downscale stage applied from declared size: %v", eng.execArgs)
		}
	}
}

func TestProcessCleansUpOnFailure(t *testing.T) {
	eng := &fakeEngine{execErr: errors.New("boom")}
	p, _, _, _ := newTestProcessor(t, eng)

	removed := make(map[string]int)
	var ws *Workspace
	p.newWorkspace = func(root string, staging config.StagingConfig) (*Workspace, error) {
		var err error
		ws, err = NewWorkspace(root, staging)
		if err != nil {
			return nil, err
		}
		ws.removeFn = func(path string) error {
			removed[path]++
			return nil
		}
		return ws, nil
	}

	if err := p.Process(context.Background(), testJob()); err == nil {
		t.Fatal("expected failure")
	}

	// spooled input, staged input, spooled subtitle, staged subtitle, the
	// reserved output path, and the workspace root
	if len(removed) != 6 {
		t.Errorf("expected 6 deletion attempts, got %d: %v", len(removed), removed)
	}
	for path, n := range removed {
		if n != 1 {
			t.Errorf("expected exactly one deletion attempt for %s, got %d", path, n)
		}
	}
	if removed[ws.Root()] != 1 {
		t.Errorf("expected one deletion attempt for the workspace root, got %d", removed[ws.Root()])
	}
}
