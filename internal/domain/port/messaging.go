package port

import "context"

// StatusPublisher emits per-segment status events while a batch runs.
type StatusPublisher interface {
	PublishStatus(ctx context.Context, msg []byte) error
}
