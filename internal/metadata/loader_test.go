package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Osmanoor/visper/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vid1.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidDescriptor(t *testing.T) {
	path := writeDescriptor(t, `{
		"video_id": "vid1",
		"segments": [
			{"clip_id": "00001", "start_time": 1.0, "end_time": 2.5,
			 "crop": {"x": 10, "y": 20, "w": 96, "h": 96},
			 "label_text": "hello world"},
			{"clip_id": "00002", "start_time": 3.0, "end_time": 4.0,
			 "crop_frames": [
				{"frame": 0, "x": 0, "y": 0, "w": 96, "h": 96},
				{"frame": 12, "x": 4, "y": 2, "w": 96, "h": 96}
			 ],
			 "label_text": "second"}
		]
	}`)

	segs, excluded, err := Load(path, "vid1", 60)
	require.NoError(t, err)
	assert.Empty(t, excluded)
	require.Len(t, segs, 2)

	assert.Equal(t, "00001", segs[0].ClipID)
	assert.Equal(t, 1.0, segs[0].Start)
	assert.Equal(t, "hello world", segs[0].Label)
	require.NotNil(t, segs[0].Crop)
	assert.Equal(t, entity.CropBox{X: 10, Y: 20, W: 96, H: 96}, *segs[0].Crop)

	require.Len(t, segs[1].CropFrames, 2)
	assert.Equal(t, 12, segs[1].CropFrames[1].Frame)
	assert.Equal(t, 4, segs[1].CropFrames[1].X)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.json"), "vid1", 0)
	require.Error(t, err)
	assert.Equal(t, entity.ErrorKindMetadata, entity.KindOf(err))
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeDescriptor(t, `{invalid`)
	_, _, err := Load(path, "vid1", 0)
	require.Error(t, err)
	assert.Equal(t, entity.ErrorKindMetadata, entity.KindOf(err))
}

func TestLoadVideoIDMismatch(t *testing.T) {
	path := writeDescriptor(t, `{"video_id": "other", "segments": [
		{"clip_id": "c", "start_time": 0, "end_time": 1,
		 "crop": {"x":0,"y":0,"w":10,"h":10}, "label_text": "x"}]}`)
	_, _, err := Load(path, "vid1", 0)
	require.Error(t, err)
}

func TestLoadInvalidSegmentsExcludedNotDropped(t *testing.T) {
	path := writeDescriptor(t, `{
		"video_id": "vid1",
		"segments": [
			{"clip_id": "00001", "start_time": 0.0, "end_time": 1.0,
			 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": "ok"},
			{"clip_id": "00002", "start_time": 5.0, "end_time": 4.0,
			 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": "reversed"},
			{"clip_id": "00003", "start_time": 1.0, "end_time": 2.0,
			 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": ""},
			{"clip_id": "00004", "start_time": 1.0, "end_time": 2.0,
			 "label_text": "no crop"},
			{"clip_id": "00001", "start_time": 2.0, "end_time": 3.0,
			 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": "dup"}
		]
	}`)

	segs, excluded, err := Load(path, "vid1", 60)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, "00001", segs[0].ClipID)

	require.Len(t, excluded, 4)
	for _, e := range excluded {
		assert.Equal(t, entity.ErrorKindMetadata, e.Kind)
		assert.Equal(t, "vid1", e.VideoID)
		assert.NotEmpty(t, e.ClipID)
	}
}

func TestLoadSegmentBeyondDurationExcluded(t *testing.T) {
	path := writeDescriptor(t, `{"segments": [
		{"clip_id": "a", "start_time": 0, "end_time": 5,
		 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": "in"},
		{"clip_id": "b", "start_time": 8, "end_time": 20,
		 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": "out"}]}`)

	segs, excluded, err := Load(path, "vid1", 10)
	require.NoError(t, err)
	assert.Len(t, segs, 1)
	require.Len(t, excluded, 1)
	assert.Equal(t, "b", excluded[0].ClipID)
}

func TestLoadZeroValidSegments(t *testing.T) {
	path := writeDescriptor(t, `{"segments": [
		{"clip_id": "a", "start_time": 3, "end_time": 1,
		 "crop": {"x":0,"y":0,"w":96,"h":96}, "label_text": "bad"}]}`)

	_, excluded, err := Load(path, "vid1", 10)
	require.Error(t, err)
	assert.Len(t, excluded, 1)
}

func TestLoadPreservesLabelBytes(t *testing.T) {
	label := "وصف عربي مع رموز \"خاصة\" و مسافات"
	desc := Descriptor{
		VideoID: "vid1",
		Segments: []entity.SegmentDescriptor{{
			ClipID: "a", Start: 0, End: 1,
			Crop:  &entity.CropBox{W: 96, H: 96},
			Label: label,
		}},
	}
	data, err := json.Marshal(desc)
	require.NoError(t, err)
	path := writeDescriptor(t, string(data))

	segs, _, err := Load(path, "vid1", 10)
	require.NoError(t, err)
	assert.Equal(t, label, segs[0].Label)
}
