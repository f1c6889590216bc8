package port

import "context"

// FailureNotifier reports a finished batch that contains failures.
type FailureNotifier interface {
	NotifyBatchFailures(ctx context.Context, runID string, failed, total int) error
}
