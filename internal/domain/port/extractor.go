package port

import (
	"context"

	"github.com/Osmanoor/visper/internal/geometry"
	"github.com/Osmanoor/visper/internal/timecode"
)

// ExtractRequest carries everything a backend needs to materialize one
// cropped clip.
type ExtractRequest struct {
	SourcePath string
	OutputPath string
	FrameRate  float64
	Window     timecode.Window
	Crop       *geometry.ResolvedCrop
}

// ClipExtractor wraps an external media tool. Implementations own the
// external process for the lifetime of the call, honor ctx cancellation
// by terminating it, and guarantee OutputPath either holds a complete
// file or does not exist (same-dir temp file, atomic rename on success,
// delete on failure).
type ClipExtractor interface {
	ExtractClip(ctx context.Context, req ExtractRequest) error
}
