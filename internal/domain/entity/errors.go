package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies segment and video failures for the batch report.
type ErrorKind string

const (
	ErrorKindMetadata   ErrorKind = "metadata"
	ErrorKindGeometry   ErrorKind = "invalid_geometry"
	ErrorKindExtraction ErrorKind = "extraction"
	ErrorKindIO         ErrorKind = "io"
)

// SegmentError carries enough context (video, clip, kind, cause) for a
// failed unit to be retried manually from the batch report. A clip ID of
// "" marks a video-scoped failure covering all of that video's segments.
type SegmentError struct {
	Kind    ErrorKind
	VideoID string
	ClipID  string
	Err     error
}

func (e *SegmentError) Error() string {
	if e.ClipID == "" {
		return fmt.Sprintf("%s: video %s: %v", e.Kind, e.VideoID, e.Err)
	}
	return fmt.Sprintf("%s: video %s clip %s: %v", e.Kind, e.VideoID, e.ClipID, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

func NewMetadataError(videoID, clipID string, err error) *SegmentError {
	return &SegmentError{Kind: ErrorKindMetadata, VideoID: videoID, ClipID: clipID, Err: err}
}

func NewInvalidGeometryError(videoID, clipID string, err error) *SegmentError {
	return &SegmentError{Kind: ErrorKindGeometry, VideoID: videoID, ClipID: clipID, Err: err}
}

func NewExtractionError(videoID, clipID string, err error) *SegmentError {
	return &SegmentError{Kind: ErrorKindExtraction, VideoID: videoID, ClipID: clipID, Err: err}
}

func NewIOError(videoID, clipID string, err error) *SegmentError {
	return &SegmentError{Kind: ErrorKindIO, VideoID: videoID, ClipID: clipID, Err: err}
}

// KindOf extracts the error kind; errors from outside the pipeline
// boundary are treated as IO failures.
func KindOf(err error) ErrorKind {
	var se *SegmentError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ErrorKindIO
}
