// Package metadata parses per-video descriptor files into segment
// lists. Parsing is pure: no side effects beyond reading the file.
package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Osmanoor/visper/internal/domain/entity"
)

// Descriptor is the on-disk shape of a per-video metadata file.
type Descriptor struct {
	VideoID  string                     `json:"video_id"`
	Segments []entity.SegmentDescriptor `json:"segments"`
}

// Load reads the descriptor at path for videoID and returns its valid
// segments in file order. Segments failing validation are excluded and
// returned as segment-scoped metadata errors so the orchestrator can
// surface them; they are never silently dropped. A missing or
// malformed file, a video_id mismatch, or zero valid segments fails the
// whole video with a video-scoped metadata error.
//
// sourceDuration bounds the timing check when positive; pass 0 to skip
// it (e.g. when the probe failed earlier).
func Load(path, videoID string, sourceDuration float64) ([]entity.SegmentDescriptor, []*entity.SegmentError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, entity.NewMetadataError(videoID, "", fmt.Errorf("read descriptor: %w", err))
	}

	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, nil, entity.NewMetadataError(videoID, "", fmt.Errorf("parse descriptor: %w", err))
	}
	if desc.VideoID != "" && desc.VideoID != videoID {
		return nil, nil, entity.NewMetadataError(videoID, "",
			fmt.Errorf("descriptor video_id %q does not match %q", desc.VideoID, videoID))
	}
	if len(desc.Segments) == 0 {
		return nil, nil, entity.NewMetadataError(videoID, "", errors.New("descriptor has no segments"))
	}

	var (
		valid    []entity.SegmentDescriptor
		excluded []*entity.SegmentError
		seen     = make(map[string]struct{}, len(desc.Segments))
	)
	for i := range desc.Segments {
		seg := desc.Segments[i]
		if err := seg.Validate(); err != nil {
			excluded = append(excluded, entity.NewMetadataError(videoID, seg.ClipID, err))
			continue
		}
		if _, dup := seen[seg.ClipID]; dup {
			excluded = append(excluded, entity.NewMetadataError(videoID, seg.ClipID,
				errors.New("duplicate clip_id within video")))
			continue
		}
		if sourceDuration > 0 && seg.End > sourceDuration {
			excluded = append(excluded, entity.NewMetadataError(videoID, seg.ClipID,
				fmt.Errorf("end_time %v exceeds source duration %v", seg.End, sourceDuration)))
			continue
		}
		seen[seg.ClipID] = struct{}{}
		valid = append(valid, seg)
	}

	if len(valid) == 0 {
		return nil, excluded, entity.NewMetadataError(videoID, "", errors.New("no valid segments in descriptor"))
	}
	return valid, excluded, nil
}
