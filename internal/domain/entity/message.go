package entity

// SegmentStatusMessage is the optional per-segment status event
// published while a batch runs.
type SegmentStatusMessage struct {
	RunID        string        `json:"run_id"`
	VideoID      string        `json:"video_id"`
	ClipID       string        `json:"clip_id,omitempty"`
	Status       SegmentStatus `json:"status"`
	ErrorKind    ErrorKind     `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

func StatusMessageFor(runID string, o SegmentOutcome) SegmentStatusMessage {
	return SegmentStatusMessage{
		RunID:        runID,
		VideoID:      o.VideoID,
		ClipID:       o.ClipID,
		Status:       o.Status,
		ErrorKind:    o.ErrorKind,
		ErrorMessage: o.ErrorMessage,
	}
}
