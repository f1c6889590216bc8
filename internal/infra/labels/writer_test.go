package labels

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Osmanoor/visper/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLabelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vid1", "00001.json")
	in := entity.Label{
		ClipID:    "00001",
		LabelText: "نص تجريبي with mixed scripts، ok?",
		Start:     1.25,
		End:       3.75,
	}

	require.NoError(t, NewWriter().WriteLabel(context.Background(), path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out entity.Label
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, in.LabelText, out.LabelText)
}

func TestWriteLabelNoPartialOnExistingDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "00001.json")

	require.NoError(t, NewWriter().WriteLabel(context.Background(), path, entity.Label{ClipID: "00001", LabelText: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may remain")
}
