package manifest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordCompletionIsIdempotent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "manifest.db"), zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.RecordCompletion(ctx, "vid1", "00001", "/out/vid1/00001.mp4"))
	require.NoError(t, store.RecordCompletion(ctx, "vid1", "00001", "/out/vid1/00001.mp4"))
	require.NoError(t, store.RecordCompletion(ctx, "vid1", "00002", "/out/vid1/00002.mp4"))
	require.NoError(t, store.RecordCompletion(ctx, "vid2", "00001", "/out/vid2/00001.mp4"))

	clips, err := store.Completed(ctx, "vid1")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001", "00002"}, clips)

	clips, err = store.Completed(ctx, "vid3")
	require.NoError(t, err)
	assert.Empty(t, clips)
}
