package entity

import (
	"time"

	"github.com/google/uuid"
)

type SegmentStatus string

const (
	StatusCompleted SegmentStatus = "completed"
	StatusSkipped   SegmentStatus = "skipped"
	StatusFailed    SegmentStatus = "failed"
)

// SegmentOutcome is the per-unit result recorded in the batch report.
// ClipID is empty for video-scoped outcomes.
type SegmentOutcome struct {
	VideoID      string        `json:"video_id"`
	ClipID       string        `json:"clip_id,omitempty"`
	Status       SegmentStatus `json:"status"`
	ErrorKind    ErrorKind     `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

func CompletedOutcome(videoID, clipID string, warnings []string) SegmentOutcome {
	return SegmentOutcome{VideoID: videoID, ClipID: clipID, Status: StatusCompleted, Warnings: warnings}
}

func SkippedOutcome(videoID, clipID string) SegmentOutcome {
	return SegmentOutcome{VideoID: videoID, ClipID: clipID, Status: StatusSkipped}
}

func FailedOutcome(err *SegmentError) SegmentOutcome {
	return SegmentOutcome{
		VideoID:      err.VideoID,
		ClipID:       err.ClipID,
		Status:       StatusFailed,
		ErrorKind:    err.Kind,
		ErrorMessage: err.Err.Error(),
	}
}

// BatchReport aggregates every outcome of one run. It is the
// machine-readable summary written next to the clip artifacts.
type BatchReport struct {
	RunID          string            `json:"run_id"`
	StartedAt      time.Time         `json:"started_at"`
	FinishedAt     time.Time         `json:"finished_at"`
	Completed      int               `json:"completed"`
	Skipped        int               `json:"skipped"`
	Failed         int               `json:"failed"`
	FailuresByKind map[ErrorKind]int `json:"failures_by_kind,omitempty"`
	Outcomes       []SegmentOutcome  `json:"outcomes"`
}

func NewBatchReport() *BatchReport {
	return &BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Outcomes:  make([]SegmentOutcome, 0, 128),
	}
}

func (r *BatchReport) Add(o SegmentOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Finalize recomputes the aggregate counters from the outcomes.
func (r *BatchReport) Finalize() {
	r.FinishedAt = time.Now().UTC()
	r.Completed, r.Skipped, r.Failed = 0, 0, 0
	r.FailuresByKind = make(map[ErrorKind]int)
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCompleted:
			r.Completed++
		case StatusSkipped:
			r.Skipped++
		case StatusFailed:
			r.Failed++
			r.FailuresByKind[o.ErrorKind]++
		}
	}
	if len(r.FailuresByKind) == 0 {
		r.FailuresByKind = nil
	}
}

func (r *BatchReport) HasFailures() bool {
	return r.Failed > 0
}
