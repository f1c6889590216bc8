// Package timecode maps segment timestamps onto the extraction
// backend's addressing units.
package timecode

import (
	"errors"
	"fmt"
	"math"
)

// grid alignment tolerance for timestamps that sit exactly on a frame
// boundary in decimal but not in binary floating point
const eps = 1e-9

// Window is a temporal extraction window in both time-based and
// frame-based addressing. Seek floors to the frame grid and the end
// ceils, so the window is a superset of the requested interval; the
// extra margin on either side never exceeds one frame period.
type Window struct {
	Seek       float64
	Duration   float64
	FirstFrame int
	FrameCount int
}

func (w Window) End() float64 {
	return w.Seek + w.Duration
}

// Map converts (start, end) seconds into a Window on the source's frame
// grid, clamped so it never extends past the source duration.
func Map(start, end, frameRate, sourceDuration float64) (Window, error) {
	if frameRate <= 0 {
		return Window{}, fmt.Errorf("invalid frame rate %v", frameRate)
	}
	if end <= start {
		return Window{}, fmt.Errorf("invalid interval [%v, %v)", start, end)
	}
	if start < 0 {
		return Window{}, fmt.Errorf("negative start time %v", start)
	}

	firstFrame := int(math.Floor(start*frameRate + eps))
	endFrame := int(math.Ceil(end*frameRate - eps))

	if sourceDuration > 0 {
		lastSourceFrame := int(math.Floor(sourceDuration*frameRate + eps))
		if endFrame > lastSourceFrame {
			endFrame = lastSourceFrame
		}
	}
	if endFrame <= firstFrame {
		return Window{}, errors.New("window lies past the end of the source")
	}

	return Window{
		Seek:       float64(firstFrame) / frameRate,
		Duration:   float64(endFrame-firstFrame) / frameRate,
		FirstFrame: firstFrame,
		FrameCount: endFrame - firstFrame,
	}, nil
}
