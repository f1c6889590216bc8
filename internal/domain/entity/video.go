package entity

// SourceVideo describes one raw input video. It is probed once per batch
// and shared read-only by all segment workers of that video.
type SourceVideo struct {
	ID        string
	Path      string
	Duration  float64
	FrameRate float64
	Width     int
	Height    int
}

// FramePeriod returns the duration of a single frame in seconds.
func (v *SourceVideo) FramePeriod() float64 {
	if v.FrameRate <= 0 {
		return 0
	}
	return 1.0 / v.FrameRate
}
