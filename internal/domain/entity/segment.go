package entity

import (
	"errors"
	"strings"
)

// CropBox is a spatial crop rectangle in source-frame pixel coordinates.
type CropBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func (b CropBox) Area() int {
	return b.W * b.H
}

// CropSample is one entry of a time-varying crop sequence. Frame is the
// output-frame index relative to the segment start; frames between
// samples hold the nearest preceding sample.
type CropSample struct {
	Frame int `json:"frame"`
	CropBox
}

// SegmentDescriptor is one labeled time interval of a source video,
// destined to become a single clip artifact. Exactly one of Crop or
// CropFrames carries the spatial specification.
type SegmentDescriptor struct {
	ClipID     string       `json:"clip_id"`
	Start      float64      `json:"start_time"`
	End        float64      `json:"end_time"`
	Crop       *CropBox     `json:"crop,omitempty"`
	CropFrames []CropSample `json:"crop_frames,omitempty"`
	Label      string       `json:"label_text"`
}

// HasCrop reports whether any crop specification was supplied.
func (s *SegmentDescriptor) HasCrop() bool {
	return s.Crop != nil || len(s.CropFrames) > 0
}

// Validate checks the descriptor's intrinsic invariants. Bounds against
// the source duration are checked by the loader once it is known.
func (s *SegmentDescriptor) Validate() error {
	if strings.TrimSpace(s.ClipID) == "" {
		return errors.New("missing clip_id")
	}
	if s.Start < 0 {
		return errors.New("start_time is negative")
	}
	if s.End <= s.Start {
		return errors.New("end_time must be greater than start_time")
	}
	if s.Label == "" {
		return errors.New("empty label_text")
	}
	if !s.HasCrop() {
		return errors.New("missing crop specification")
	}
	if s.Crop != nil && len(s.CropFrames) > 0 {
		return errors.New("both crop and crop_frames supplied")
	}
	return nil
}
