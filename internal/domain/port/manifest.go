package port

import "context"

// ManifestStore is an optional write-through log of completed clips.
// Artifact existence on disk stays the authoritative resume check; the
// manifest exists for fast inspection of large corpora.
type ManifestStore interface {
	RecordCompletion(ctx context.Context, videoID, clipID, mediaPath string) error
	Close() error
}
