package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// BurnJob is one subtitle burn request from submission to finished output.
type BurnJob struct {
	JobID        string     `json:"job_id" db:"job_id" redis:"job_id" validate:"omitempty"`
	UserID       string     `json:"user_id" db:"user_id" redis:"user_id" validate:"omitempty"`
	InputS3Key   string     `json:"input_s3_key" db:"input_s3_key" redis:"input_s3_key" validate:"required"`
	InputBucket  string     `json:"input_bucket" db:"input_bucket" redis:"input_bucket" validate:"required"`
	SubtitleKey  string     `json:"subtitle_s3_key" db:"subtitle_s3_key" redis:"subtitle_s3_key" validate:"omitempty"`
	OutputS3Key  string     `json:"output_s3_key" db:"output_s3_key" redis:"output_s3_key" validate:"omitempty"`
	OutputBucket string     `json:"output_bucket" db:"output_bucket" redis:"output_bucket" validate:"required"`
	OutputName   string     `json:"output_name" db:"output_name" redis:"output_name" validate:"required,lte=255"`
	FileSize     int64      `json:"file_size" db:"file_size" redis:"file_size" validate:"required"`
	FrameRate    float64    `json:"frame_rate" db:"frame_rate" redis:"frame_rate" validate:"gte=0"`
	Style        StyleSpec  `json:"style" db:"style" redis:"style" validate:"required"`
	Progress     float64    `json:"progress" db:"progress" redis:"progress" validate:"omitempty"`
	Status       JobStatus  `json:"status" db:"status" redis:"status" validate:"omitempty"`
	ErrorText    string     `json:"error_text,omitempty" db:"error_text" redis:"error_text"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at" redis:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty" db:"started_at" redis:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at" redis:"completed_at"`
}

// BurnJobInput is the submission payload. Consumed once, never persisted
// as-is; the usecase turns it into a BurnJob.
type BurnJobInput struct {
	FileName     string    `json:"filename" validate:"required,lte=255"`
	FileSize     int64     `json:"file_size" validate:"required,gt=0"`
	SubtitleName string    `json:"subtitle_name" validate:"omitempty,lte=255"`
	FrameRate    float64   `json:"frame_rate" validate:"gte=0"`
	OutputName   string    `json:"output_name" validate:"required,lte=255"`
	Style        StyleSpec `json:"style" validate:"required"`
}

// BurnResult points at the downloadable output. The URL is transient; the
// caller stops using it once the presign window lapses.
type BurnResult struct {
	JobID       string    `json:"job_id"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type BurnJobList struct {
	Jobs       []*BurnJob `json:"jobs"`
	TotalCount int        `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	HasMore    bool       `json:"has_more"`
}

func NewJobID() string {
	return uuid.New().String()
}
