package repository

import (
	"encoding/json"
	"testing"

	"github.com/Zixzorash/BURN-SUB/internal/models"
)

func TestDecodeJob(t *testing.T) {
	want := &models.BurnJob{
		JobID:        "job-1",
		InputS3Key:   "uploads/u/movie.mp4",
		InputBucket:  "input",
		OutputBucket: "output",
		OutputName:   "burned.mp4",
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := decodeJob(string(data))
	if err != nil {
		t.Fatalf("decodeJob: %v", err)
	}
	if got.JobID != want.JobID || got.InputS3Key != want.InputS3Key {
		t.Errorf("decodeJob = %+v, want %+v", got, want)
	}
}

func TestDecodeJobRejectsPoisonEntries(t *testing.T) {
	for _, entry := range []string{"", "not json", "{", `{"user_id":"u"}`} {
		if _, err := decodeJob(entry); err == nil {
			t.Errorf("decodeJob(%q) accepted a poison entry", entry)
		}
	}
}
