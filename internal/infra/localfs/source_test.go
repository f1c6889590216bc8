package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVideoExtensionCandidates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "vid1.mkv"), []byte("x"), 0o644))

	src := NewSource(root, []string{"mp4", "mkv"})
	path, cleanup, err := src.ResolveVideo(context.Background(), "vid1")
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, filepath.Join(root, "vid1.mkv"), path)
}

func TestResolveVideoMissing(t *testing.T) {
	src := NewSource(t.TempDir(), []string{"mp4"})
	_, _, err := src.ResolveVideo(context.Background(), "vid1")
	assert.Error(t, err)
}
