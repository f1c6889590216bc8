package ffmpeg

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Osmanoor/visper/internal/domain/port"
	"github.com/Osmanoor/visper/internal/geometry"
	"github.com/Osmanoor/visper/internal/timecode"
)

// writeFakeBackend installs a script that writes partial output to the
// final argument (the temp path) and then hangs, standing in for an
// encoder that stalls mid-clip.
func writeFakeBackend(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\nfor out; do :; done\necho partial > \"$out\"\nsleep 30\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExtractClipKilledMidProcessLeavesNoArtifacts(t *testing.T) {
	extractor, err := NewExtractor(ExtractorConfig{
		FFmpegPath: writeFakeBackend(t),
		VideoCodec: "libx264",
		AudioCodec: "aac",
		Preset:     "veryfast",
		CRF:        18,
	}, zap.NewNop())
	require.NoError(t, err)

	outputDir := t.TempDir()
	outputPath := filepath.Join(outputDir, "00001.mp4")
	window, err := timecode.Map(1, 3, 25, 60)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	started := time.Now()
	err = extractor.ExtractClip(ctx, port.ExtractRequest{
		SourcePath: "input.mp4",
		OutputPath: outputPath,
		FrameRate:  25,
		Window:     window,
		Crop:       &geometry.ResolvedCrop{W: 100, H: 100, Samples: []geometry.Sample{{}}},
	})
	elapsed := time.Since(started)

	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The slot must come back roughly at the deadline plus the pipe
	// drain bound, not when the stalled backend finishes on its own.
	assert.Less(t, elapsed, 10*time.Second)

	// The partial file was written to the temp path; neither it nor the
	// final path may survive the kill.
	assert.NoFileExists(t, outputPath)
	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial or temp files may remain")
}
