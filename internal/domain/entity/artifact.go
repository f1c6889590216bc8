package entity

import (
	"os"
	"path/filepath"
)

// ClipArtifact is the pair of output paths for one segment: the cropped
// media file and its sibling label file. Paths are deterministic per
// (video_id, clip_id), which makes the existence check below the
// batch's resume marker.
type ClipArtifact struct {
	VideoID   string
	ClipID    string
	MediaPath string
	LabelPath string
}

func NewClipArtifact(outputRoot, videoID, clipID, ext string) ClipArtifact {
	dir := filepath.Join(outputRoot, videoID)
	return ClipArtifact{
		VideoID:   videoID,
		ClipID:    clipID,
		MediaPath: filepath.Join(dir, clipID+"."+ext),
		LabelPath: filepath.Join(dir, clipID+".json"),
	}
}

func (a ClipArtifact) Dir() string {
	return filepath.Dir(a.MediaPath)
}

// Complete reports whether both the media file and the label file exist.
// Both are required; either alone means the segment must be redone.
func (a ClipArtifact) Complete() bool {
	return isRegularFile(a.MediaPath) && isRegularFile(a.LabelPath)
}

func isRegularFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Size() > 0
}

// Label is the content of a clip's label file.
type Label struct {
	ClipID    string  `json:"clip_id"`
	LabelText string  `json:"label_text"`
	Start     float64 `json:"start_time"`
	End       float64 `json:"end_time"`
}
