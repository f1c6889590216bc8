package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Osmanoor/visper/internal/domain/entity"
	"github.com/Osmanoor/visper/internal/domain/port"
	"github.com/Osmanoor/visper/internal/geometry"
	"github.com/Osmanoor/visper/internal/infra/fsx"
	"github.com/Osmanoor/visper/internal/infra/metrics"
	"github.com/Osmanoor/visper/internal/timecode"
)

// SegmentPipeline turns one validated segment descriptor into its two
// output artifacts: the cropped clip and the sibling label file.
type SegmentPipeline struct {
	extractor port.ClipExtractor
	labels    port.LabelWriter
	manifest  port.ManifestStore // optional
	logger    *zap.Logger

	timeout    time.Duration
	outputRoot string
	outputExt  string
}

type SegmentPipelineConfig struct {
	Timeout    time.Duration
	OutputRoot string
	OutputExt  string
}

func NewSegmentPipeline(
	extractor port.ClipExtractor,
	labels port.LabelWriter,
	manifest port.ManifestStore,
	cfg SegmentPipelineConfig,
	logger *zap.Logger,
) *SegmentPipeline {
	return &SegmentPipeline{
		extractor:  extractor,
		labels:     labels,
		manifest:   manifest,
		logger:     logger,
		timeout:    cfg.Timeout,
		outputRoot: cfg.OutputRoot,
		outputExt:  cfg.OutputExt,
	}
}

// Execute processes one segment end to end. It never returns an error:
// every failure is folded into the outcome so the caller's only job is
// to record it.
func (p *SegmentPipeline) Execute(ctx context.Context, video *entity.SourceVideo, seg entity.SegmentDescriptor) entity.SegmentOutcome {
	tracer := otel.Tracer("visper/usecase")
	ctx, span := tracer.Start(ctx, "segment.extract")
	span.SetAttributes(
		attribute.String("video.id", video.ID),
		attribute.String("clip.id", seg.ClipID),
	)
	defer span.End()

	log := p.logger.With(zap.String("video_id", video.ID), zap.String("clip_id", seg.ClipID))

	crop, err := geometry.Resolve(&seg, video.Width, video.Height)
	if err != nil {
		return p.fail(log, entity.NewInvalidGeometryError(video.ID, seg.ClipID, err))
	}
	for _, warn := range crop.Warnings {
		log.Warn("crop adjusted", zap.String("detail", warn))
		metrics.CropSamplesClamped.Inc()
	}

	window, err := timecode.Map(seg.Start, seg.End, video.FrameRate, video.Duration)
	if err != nil {
		return p.fail(log, entity.NewMetadataError(video.ID, seg.ClipID, err))
	}

	artifact := entity.NewClipArtifact(p.outputRoot, video.ID, seg.ClipID, p.outputExt)
	if err := fsx.EnsureDir(artifact.Dir()); err != nil {
		return p.fail(log, entity.NewIOError(video.ID, seg.ClipID, err))
	}

	extractStart := time.Now()
	extractCtx, cancel := context.WithTimeout(ctx, p.timeout)
	err = p.extractor.ExtractClip(extractCtx, port.ExtractRequest{
		SourcePath: video.Path,
		OutputPath: artifact.MediaPath,
		FrameRate:  video.FrameRate,
		Window:     window,
		Crop:       crop,
	})
	cancel()
	metrics.SegmentStageDuration.WithLabelValues("extract").Observe(time.Since(extractStart).Seconds())
	if err != nil {
		return p.fail(log, entity.NewExtractionError(video.ID, seg.ClipID, err))
	}

	labelStart := time.Now()
	err = p.labels.WriteLabel(ctx, artifact.LabelPath, entity.Label{
		ClipID:    seg.ClipID,
		LabelText: seg.Label,
		Start:     seg.Start,
		End:       seg.End,
	})
	metrics.SegmentStageDuration.WithLabelValues("label").Observe(time.Since(labelStart).Seconds())
	if err != nil {
		return p.fail(log, entity.NewIOError(video.ID, seg.ClipID, err))
	}

	if p.manifest != nil {
		if err := p.manifest.RecordCompletion(ctx, video.ID, seg.ClipID, artifact.MediaPath); err != nil {
			log.Warn("manifest update failed", zap.Error(err))
		}
	}

	log.Info("segment completed",
		zap.Float64("seek", window.Seek),
		zap.Float64("duration", window.Duration),
		zap.Int("frames", window.FrameCount),
	)
	metrics.SegmentsProcessed.WithLabelValues(string(entity.StatusCompleted)).Inc()
	return entity.CompletedOutcome(video.ID, seg.ClipID, crop.Warnings)
}

func (p *SegmentPipeline) fail(log *zap.Logger, segErr *entity.SegmentError) entity.SegmentOutcome {
	log.Error("segment failed",
		zap.String("kind", string(segErr.Kind)),
		zap.Error(segErr.Err),
	)
	metrics.SegmentsProcessed.WithLabelValues(string(entity.StatusFailed)).Inc()
	metrics.SegmentFailures.WithLabelValues(string(segErr.Kind)).Inc()
	return entity.FailedOutcome(segErr)
}
