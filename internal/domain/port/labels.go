package port

import (
	"context"

	"github.com/Osmanoor/visper/internal/domain/entity"
)

// LabelWriter serializes a clip's label file atomically.
type LabelWriter interface {
	WriteLabel(ctx context.Context, path string, label entity.Label) error
}
