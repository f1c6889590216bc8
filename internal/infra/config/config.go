// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	VideoRoot    string `env:"VISPER_VIDEO_ROOT"`
	MetadataRoot string `env:"VISPER_METADATA_ROOT,required"`
	OutputRoot   string `env:"VISPER_OUTPUT_ROOT,required"`

	Backend        string        `env:"VISPER_BACKEND" envDefault:"ffmpeg"`
	Workers        int           `env:"VISPER_WORKERS" envDefault:"4"`
	SegmentTimeout time.Duration `env:"VISPER_SEGMENT_TIMEOUT" envDefault:"5m"`
	VideoExts      []string      `env:"VISPER_VIDEO_EXTS" envDefault:"mp4,mkv,webm"`
	OutputExt      string        `env:"VISPER_OUTPUT_EXT" envDefault:"mp4"`
	TempDir        string        `env:"VISPER_TEMP_DIR" envDefault:"/tmp/visper"`

	FFmpegPath  string `env:"VISPER_FFMPEG_PATH" envDefault:"ffmpeg"`
	FFprobePath string `env:"VISPER_FFPROBE_PATH" envDefault:"ffprobe"`
	VideoCodec  string `env:"VISPER_VIDEO_CODEC" envDefault:"libx264"`
	AudioCodec  string `env:"VISPER_AUDIO_CODEC" envDefault:"aac"`
	Preset      string `env:"VISPER_PRESET" envDefault:"veryfast"`
	CRF         int    `env:"VISPER_CRF" envDefault:"18"`

	ManifestPath string `env:"VISPER_MANIFEST_PATH"`

	MinioEndpoint  string `env:"VISPER_MINIO_ENDPOINT"`
	MinioAccessKey string `env:"VISPER_MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"VISPER_MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `env:"VISPER_MINIO_USE_SSL" envDefault:"false"`
	MinioBucket    string `env:"VISPER_MINIO_BUCKET" envDefault:"raw-videos"`

	RabbitMQURL      string `env:"VISPER_RABBITMQ_URL"`
	RabbitMQExchange string `env:"VISPER_RABBITMQ_EXCHANGE" envDefault:"visper.clips"`

	SMTPHost string `env:"VISPER_SMTP_HOST"`
	SMTPPort int    `env:"VISPER_SMTP_PORT" envDefault:"587"`
	SMTPFrom string `env:"VISPER_SMTP_FROM"`
	SMTPTo   string `env:"VISPER_SMTP_TO"`

	MetricsPort    int    `env:"VISPER_METRICS_PORT" envDefault:"9090"`
	JaegerEndpoint string `env:"VISPER_JAEGER_ENDPOINT"`
	LogLevel       string `env:"VISPER_LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("VISPER_WORKERS must be at least 1, got %d", cfg.Workers)
	}
	switch cfg.Backend {
	case "ffmpeg", "ffmpeg-go":
	default:
		return nil, fmt.Errorf("unknown backend %q (want ffmpeg or ffmpeg-go)", cfg.Backend)
	}
	if cfg.MinioEndpoint == "" && cfg.VideoRoot == "" {
		return nil, fmt.Errorf("either VISPER_VIDEO_ROOT or VISPER_MINIO_ENDPOINT must be set")
	}
	return cfg, nil
}

// UseMinio reports whether raw videos come from object storage rather
// than the local filesystem.
func (c *Config) UseMinio() bool {
	return c.MinioEndpoint != ""
}
