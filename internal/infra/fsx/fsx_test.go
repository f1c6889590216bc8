package fsx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteFileAtomic(dir, "label.json", []byte(`{"a":1}`)))

	data, err := os.ReadFile(filepath.Join(dir, "label.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	// replace semantics
	require.NoError(t, WriteFileAtomic(dir, "label.json", []byte(`{"a":2}`)))
	data, err = os.ReadFile(filepath.Join(dir, "label.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomicCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, WriteFileAtomic(dir, "x.json", []byte("{}")))
	_, err := os.Stat(filepath.Join(dir, "x.json"))
	assert.NoError(t, err)
}

func TestTempPathKeepsExtension(t *testing.T) {
	p := TempPath("/out/vid1/00001.mp4")

	assert.Equal(t, "/out/vid1", filepath.Dir(p))
	assert.True(t, strings.HasPrefix(filepath.Base(p), ".tmp-"))
	assert.True(t, strings.HasSuffix(p, ".mp4"))
	assert.NotEqual(t, p, TempPath("/out/vid1/00001.mp4"))
}
