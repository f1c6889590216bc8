// Package geometry normalizes a segment's spatial crop specification
// into a concrete crop window clamped to the source frame bounds.
package geometry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Osmanoor/visper/internal/domain/entity"
)

// ErrZeroArea is returned when clamping collapses a crop rectangle to
// nothing, i.e. the supplied box lies entirely outside the frame.
var ErrZeroArea = errors.New("crop rectangle has zero area after clamping")

// Sample places the crop window's origin at a given output-frame index.
type Sample struct {
	Frame int
	X     int
	Y     int
}

// ResolvedCrop is a per-frame crop window with a constant size. Frames
// between samples hold the nearest preceding sample; frames before the
// first sample use the first sample.
type ResolvedCrop struct {
	W        int
	H        int
	Samples  []Sample
	Warnings []string
}

// Static reports whether the window never moves.
func (r *ResolvedCrop) Static() bool {
	return len(r.Samples) == 1
}

// At returns the window origin for an output-frame index.
func (r *ResolvedCrop) At(frame int) (x, y int) {
	s := r.Samples[0]
	for _, cand := range r.Samples[1:] {
		if cand.Frame > frame {
			break
		}
		s = cand
	}
	return s.X, s.Y
}

// Resolve turns the segment's crop specification into a ResolvedCrop for
// a source frame of the given dimensions. Boxes reaching past the frame
// are clamped and the clamping recorded as a warning; a box that clamps
// to zero area fails with ErrZeroArea.
func Resolve(seg *entity.SegmentDescriptor, frameW, frameH int) (*ResolvedCrop, error) {
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("invalid source frame dimensions %dx%d", frameW, frameH)
	}

	samples := cropSamples(seg)
	if len(samples) == 0 {
		return nil, errors.New("no crop specification")
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].Frame < samples[j].Frame })

	resolved := &ResolvedCrop{}
	clamped := make([]entity.CropSample, 0, len(samples))
	for _, s := range samples {
		box, warn := clampBox(s.CropBox, frameW, frameH)
		if box.Area() == 0 {
			return nil, fmt.Errorf("sample at frame %d (%+v): %w", s.Frame, s.CropBox, ErrZeroArea)
		}
		if warn {
			resolved.Warnings = append(resolved.Warnings,
				fmt.Sprintf("crop sample at frame %d clamped from %+v to %+v", s.Frame, s.CropBox, box))
		}
		clamped = append(clamped, entity.CropSample{Frame: s.Frame, CropBox: box})
	}

	// The backend crop filter takes a constant size, so normalize to the
	// largest clamped sample and keep only the origin per sample.
	for _, s := range clamped {
		if s.W > resolved.W {
			resolved.W = s.W
		}
		if s.H > resolved.H {
			resolved.H = s.H
		}
	}
	sizeVaries := false
	for _, s := range clamped {
		if s.W != resolved.W || s.H != resolved.H {
			sizeVaries = true
		}
		x := clampOrigin(s.X, resolved.W, frameW)
		y := clampOrigin(s.Y, resolved.H, frameH)
		resolved.Samples = append(resolved.Samples, Sample{Frame: s.Frame, X: x, Y: y})
	}
	if sizeVaries {
		resolved.Warnings = append(resolved.Warnings,
			fmt.Sprintf("crop sample sizes vary; normalized to %dx%d", resolved.W, resolved.H))
	}

	return resolved, nil
}

func cropSamples(seg *entity.SegmentDescriptor) []entity.CropSample {
	if seg.Crop != nil {
		return []entity.CropSample{{Frame: 0, CropBox: *seg.Crop}}
	}
	out := make([]entity.CropSample, len(seg.CropFrames))
	copy(out, seg.CropFrames)
	return out
}

// clampBox fits a rectangle into [0,frameW)x[0,frameH), shrinking it as
// needed. The bool reports whether anything changed.
func clampBox(b entity.CropBox, frameW, frameH int) (entity.CropBox, bool) {
	out := b
	if out.X < 0 {
		out.W += out.X
		out.X = 0
	}
	if out.Y < 0 {
		out.H += out.Y
		out.Y = 0
	}
	if out.X+out.W > frameW {
		out.W = frameW - out.X
	}
	if out.Y+out.H > frameH {
		out.H = frameH - out.Y
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out, out != b
}

// clampOrigin shifts an origin so a window of the given size stays
// inside the frame.
func clampOrigin(pos, size, bound int) int {
	if pos+size > bound {
		pos = bound - size
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
