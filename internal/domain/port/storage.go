package port

import "context"

// VideoSource resolves a video ID to a local file path for the raw
// video. The cleanup func releases anything fetched for the call (a
// no-op for local sources); it must be called once extraction of all of
// the video's segments is finished.
type VideoSource interface {
	ResolveVideo(ctx context.Context, videoID string) (path string, cleanup func(), err error)
}
