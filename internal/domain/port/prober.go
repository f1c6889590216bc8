package port

import (
	"context"

	"github.com/Osmanoor/visper/internal/domain/entity"
)

// Prober reads a source video's duration, frame rate and dimensions.
type Prober interface {
	Probe(ctx context.Context, path string) (*entity.SourceVideo, error)
}
