// Package labels serializes the per-clip label artifact.
package labels

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Osmanoor/visper/internal/domain/entity"
	"github.com/Osmanoor/visper/internal/infra/fsx"
)

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteLabel writes the label JSON atomically next to the clip's media
// file. label_text passes through encoding/json untouched, so the text
// read back equals the text parsed from the descriptor byte for byte.
func (w *Writer) WriteLabel(_ context.Context, path string, label entity.Label) error {
	data, err := json.MarshalIndent(label, "", "  ")
	if err != nil {
		return fmt.Errorf("encode label: %w", err)
	}
	data = append(data, '\n')

	if err := fsx.WriteFileAtomic(filepath.Dir(path), filepath.Base(path), data); err != nil {
		return fmt.Errorf("write label: %w", err)
	}
	return nil
}
