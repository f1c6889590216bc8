package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Osmanoor/visper/internal/domain/port"
	"github.com/Osmanoor/visper/internal/infra/config"
	"github.com/Osmanoor/visper/internal/infra/email"
	"github.com/Osmanoor/visper/internal/infra/ffmpeg"
	"github.com/Osmanoor/visper/internal/infra/ffmpeggo"
	"github.com/Osmanoor/visper/internal/infra/labels"
	"github.com/Osmanoor/visper/internal/infra/localfs"
	"github.com/Osmanoor/visper/internal/infra/manifest"
	"github.com/Osmanoor/visper/internal/infra/metrics"
	"github.com/Osmanoor/visper/internal/infra/minio"
	"github.com/Osmanoor/visper/internal/infra/rabbitmq"
	"github.com/Osmanoor/visper/internal/infra/tracing"
	"github.com/Osmanoor/visper/internal/usecase"
	"github.com/Osmanoor/visper/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("loading configuration", zap.Error(err))
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("creating logger", zap.Error(err))
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.JaegerEndpoint != "" {
		shutdown, err := tracing.InitTracer(ctx, cfg.JaegerEndpoint)
		if err != nil {
			log.Warn("tracing disabled", zap.Error(err))
		} else {
			defer func() {
				flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer flushCancel()
				_ = shutdown(flushCtx)
			}()
		}
	}

	metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)

	var source port.VideoSource
	if cfg.UseMinio() {
		minioSource, err := minio.NewSource(minio.SourceConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.MinioBucket,
			TempDir:   cfg.TempDir,
			Exts:      cfg.VideoExts,
		}, log)
		fatalOnErr(log, "creating minio source", err)
		fatalOnErr(log, "checking raw video bucket", minioSource.EnsureBucket(ctx))
		source = minioSource
	} else {
		source = localfs.NewSource(cfg.VideoRoot, cfg.VideoExts)
	}

	var extractor port.ClipExtractor
	switch cfg.Backend {
	case "ffmpeg-go":
		extractor = ffmpeggo.NewExtractor(ffmpeggo.ExtractorConfig{
			VideoCodec: cfg.VideoCodec,
			AudioCodec: cfg.AudioCodec,
			Preset:     cfg.Preset,
			CRF:        cfg.CRF,
		}, log)
	default:
		execExtractor, err := ffmpeg.NewExtractor(ffmpeg.ExtractorConfig{
			FFmpegPath: cfg.FFmpegPath,
			VideoCodec: cfg.VideoCodec,
			AudioCodec: cfg.AudioCodec,
			Preset:     cfg.Preset,
			CRF:        cfg.CRF,
		}, log)
		fatalOnErr(log, "creating ffmpeg extractor", err)
		extractor = execExtractor
	}

	prober, err := ffmpeg.NewProber(cfg.FFprobePath)
	fatalOnErr(log, "creating ffprobe prober", err)

	var manifestStore port.ManifestStore
	if cfg.ManifestPath != "" {
		store, err := manifest.Open(cfg.ManifestPath, log)
		fatalOnErr(log, "opening manifest", err)
		defer store.Close()
		manifestStore = store
	}

	var publisher port.StatusPublisher
	if cfg.RabbitMQURL != "" {
		rmq, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, log)
		fatalOnErr(log, "connecting to rabbitmq", err)
		defer rmq.Close()
		publisher = rmq
	}

	var notifier port.FailureNotifier
	if cfg.SMTPHost != "" {
		notifier = email.NewSMTPNotifier(email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			From: cfg.SMTPFrom,
			To:   cfg.SMTPTo,
		}, log)
	}

	pipeline := usecase.NewSegmentPipeline(extractor, labels.NewWriter(), manifestStore, usecase.SegmentPipelineConfig{
		Timeout:    cfg.SegmentTimeout,
		OutputRoot: cfg.OutputRoot,
		OutputExt:  cfg.OutputExt,
	}, log)

	batch := usecase.NewBatch(source, prober, pipeline, publisher, notifier, usecase.BatchConfig{
		MetadataRoot: cfg.MetadataRoot,
		OutputRoot:   cfg.OutputRoot,
		OutputExt:    cfg.OutputExt,
		Workers:      cfg.Workers,
	}, log)

	report, err := batch.Run(ctx)
	if err != nil {
		log.Error("batch run failed", zap.Error(err))
		os.Exit(1)
	}
	if report.HasFailures() {
		log.Error("batch finished with failures",
			zap.String("run_id", report.RunID),
			zap.Int("failed", report.Failed),
		)
		os.Exit(1)
	}
}

func fatalOnErr(log *zap.Logger, msg string, err error) {
	if err != nil {
		log.Fatal(msg, zap.Error(err))
	}
}
