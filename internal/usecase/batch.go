// Package usecase orchestrates the segmentation batch: discovering
// descriptors, fanning segments out to workers, and aggregating the
// run report.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Osmanoor/visper/internal/domain/entity"
	"github.com/Osmanoor/visper/internal/domain/port"
	"github.com/Osmanoor/visper/internal/infra/fsx"
	"github.com/Osmanoor/visper/internal/infra/metrics"
	"github.com/Osmanoor/visper/internal/metadata"
)

type Batch struct {
	source    port.VideoSource
	prober    port.Prober
	pipeline  *SegmentPipeline
	publisher port.StatusPublisher  // optional
	notifier  port.FailureNotifier  // optional
	logger    *zap.Logger
	cfg       BatchConfig
}

type BatchConfig struct {
	MetadataRoot string
	OutputRoot   string
	OutputExt    string
	Workers      int
}

func NewBatch(
	source port.VideoSource,
	prober port.Prober,
	pipeline *SegmentPipeline,
	publisher port.StatusPublisher,
	notifier port.FailureNotifier,
	cfg BatchConfig,
	logger *zap.Logger,
) *Batch {
	return &Batch{
		source:    source,
		prober:    prober,
		pipeline:  pipeline,
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
	}
}

type job struct {
	video *entity.SourceVideo
	seg   entity.SegmentDescriptor
}

// Run processes every descriptor under the metadata root and writes the
// machine-readable report to <output_root>/report.json. The returned
// error covers batch-level problems only (discovery, report write);
// per-segment failures land in the report.
func (b *Batch) Run(ctx context.Context) (*entity.BatchReport, error) {
	videoIDs, err := b.discoverVideos()
	if err != nil {
		return nil, err
	}
	b.logger.Info("batch starting",
		zap.Int("videos", len(videoIDs)),
		zap.Int("workers", b.cfg.Workers),
	)

	report := entity.NewBatchReport()
	jobs := make(chan job)
	results := make(chan entity.SegmentOutcome)

	var workers sync.WaitGroup
	for i := 0; i < b.cfg.Workers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for j := range jobs {
				metrics.ActiveWorkers.Inc()
				outcome := b.pipeline.Execute(ctx, j.video, j.seg)
				metrics.ActiveWorkers.Dec()
				results <- outcome
			}
		}()
	}

	var collector sync.WaitGroup
	collector.Add(1)
	go func() {
		defer collector.Done()
		for outcome := range results {
			report.Add(outcome)
			b.publish(ctx, report.RunID, outcome)
		}
	}()

	var cleanups []func()
	for _, videoID := range videoIDs {
		if ctx.Err() != nil {
			break
		}
		cleanup := b.enqueueVideo(ctx, videoID, jobs, results)
		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}

	close(jobs)
	workers.Wait()
	close(results)
	collector.Wait()

	for _, cleanup := range cleanups {
		cleanup()
	}

	report.Finalize()
	if err := b.writeReport(report); err != nil {
		return report, err
	}

	b.logger.Info("batch finished",
		zap.String("run_id", report.RunID),
		zap.Int("completed", report.Completed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)

	if report.HasFailures() && b.notifier != nil {
		total := report.Completed + report.Skipped + report.Failed
		if err := b.notifier.NotifyBatchFailures(ctx, report.RunID, report.Failed, total); err != nil {
			b.logger.Warn("failure notification failed", zap.Error(err))
		}
	}
	return report, nil
}

// enqueueVideo resolves, probes and loads one video, pushing its
// runnable segments onto jobs and everything else straight onto
// results. Video-scoped failures produce a single outcome covering all
// of that video's segments. The returned cleanup releases the resolved
// source file and must run only after the workers are done with it.
func (b *Batch) enqueueVideo(ctx context.Context, videoID string, jobs chan<- job, results chan<- entity.SegmentOutcome) func() {
	descriptorPath := filepath.Join(b.cfg.MetadataRoot, videoID+".json")

	sourcePath, cleanup, err := b.source.ResolveVideo(ctx, videoID)
	if err != nil {
		results <- entity.FailedOutcome(entity.NewIOError(videoID, "", err))
		return nil
	}

	video, err := b.prober.Probe(ctx, sourcePath)
	if err != nil {
		cleanup()
		results <- entity.FailedOutcome(entity.NewMetadataError(videoID, "", fmt.Errorf("probe source: %w", err)))
		return nil
	}
	video.ID = videoID

	segments, excluded, err := metadata.Load(descriptorPath, videoID, video.Duration)
	for _, segErr := range excluded {
		results <- entity.FailedOutcome(segErr)
	}
	if err != nil {
		cleanup()
		var segErr *entity.SegmentError
		if !errors.As(err, &segErr) {
			segErr = entity.NewMetadataError(videoID, "", err)
		}
		results <- entity.FailedOutcome(segErr)
		return nil
	}

	for _, seg := range segments {
		artifact := entity.NewClipArtifact(b.cfg.OutputRoot, videoID, seg.ClipID, b.cfg.OutputExt)
		if artifact.Complete() {
			metrics.SegmentsProcessed.WithLabelValues(string(entity.StatusSkipped)).Inc()
			results <- entity.SkippedOutcome(videoID, seg.ClipID)
			continue
		}
		select {
		case jobs <- job{video: video, seg: seg}:
		case <-ctx.Done():
			// Workers may still hold earlier jobs for this video, so
			// the source file is released after they drain, like the
			// normal path.
			return cleanup
		}
	}
	return cleanup
}

// discoverVideos lists descriptor files under the metadata root; the
// file stem is the video ID. Order is deterministic.
func (b *Batch) discoverVideos() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(b.cfg.MetadataRoot, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list descriptors: %w", err)
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(m), ".json"))
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no descriptor files under %s", b.cfg.MetadataRoot)
	}
	return ids, nil
}

func (b *Batch) publish(ctx context.Context, runID string, outcome entity.SegmentOutcome) {
	if b.publisher == nil {
		return
	}
	body, err := json.Marshal(entity.StatusMessageFor(runID, outcome))
	if err != nil {
		return
	}
	if err := b.publisher.PublishStatus(ctx, body); err != nil {
		b.logger.Warn("status publish failed",
			zap.String("video_id", outcome.VideoID),
			zap.String("clip_id", outcome.ClipID),
			zap.Error(err),
		)
	}
}

func (b *Batch) writeReport(report *entity.BatchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	if err := fsx.WriteFileAtomic(b.cfg.OutputRoot, "report.json", data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
