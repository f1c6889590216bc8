// Package ffmpeggo is the library-driven extraction backend, building
// the ffmpeg invocation through ffmpeg-go filter chains instead of raw
// argument lists.
package ffmpeggo

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/Osmanoor/visper/internal/domain/port"
	ffmpegexec "github.com/Osmanoor/visper/internal/infra/ffmpeg"
	"github.com/Osmanoor/visper/internal/infra/fsx"
)

// Bounds Wait's pipe drain after the process is killed, so an orphaned
// grandchild holding stdout cannot block the worker slot past the
// segment deadline.
const pipeWaitDelay = 3 * time.Second

type Extractor struct {
	videoCodec string
	audioCodec string
	preset     string
	crf        int
	logger     *zap.Logger
}

type ExtractorConfig struct {
	VideoCodec string
	AudioCodec string
	Preset     string
	CRF        int
}

func NewExtractor(cfg ExtractorConfig, logger *zap.Logger) *Extractor {
	return &Extractor{
		videoCodec: cfg.VideoCodec,
		audioCodec: cfg.AudioCodec,
		preset:     cfg.Preset,
		crf:        cfg.CRF,
		logger:     logger,
	}
}

func (e *Extractor) ExtractClip(ctx context.Context, req port.ExtractRequest) error {
	tmp := fsx.TempPath(req.OutputPath)
	defer os.Remove(tmp)

	stream := ffmpeg.Input(req.SourcePath, ffmpeg.KwArgs{
		"ss": strconv.FormatFloat(req.Window.Seek, 'f', 6, 64),
	})

	if !req.Crop.Static() {
		f, err := os.CreateTemp("", "visper-sendcmd-*.txt")
		if err != nil {
			return fmt.Errorf("create sendcmd file: %w", err)
		}
		defer os.Remove(f.Name())
		if _, err := f.Write(ffmpegexec.SendCmdScript(req.Crop, req.FrameRate)); err != nil {
			f.Close()
			return fmt.Errorf("write sendcmd file: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		stream = stream.Filter("sendcmd", ffmpeg.Args{}, ffmpeg.KwArgs{"f": f.Name()})
	}

	x, y := req.Crop.At(0)
	stream = stream.Filter("crop", ffmpeg.Args{
		strconv.Itoa(req.Crop.W),
		strconv.Itoa(req.Crop.H),
		strconv.Itoa(x),
		strconv.Itoa(y),
	})

	cmd := stream.
		Output(tmp, ffmpeg.KwArgs{
			"t":        strconv.FormatFloat(req.Window.Duration, 'f', 6, 64),
			"c:v":      e.videoCodec,
			"preset":   e.preset,
			"crf":      strconv.Itoa(e.crf),
			"c:a":      e.audioCodec,
			"movflags": "+faststart",
		}).
		OverWriteOutput().
		Silent(true).
		Compile()

	e.logger.Debug("invoking ffmpeg-go", zap.Strings("args", cmd.Args))

	cmd.WaitDelay = pipeWaitDelay
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return fmt.Errorf("ffmpeg terminated: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("ffmpeg error: %w", err)
		}
	}

	fi, err := os.Stat(tmp)
	if err != nil || fi.Size() == 0 {
		return fmt.Errorf("ffmpeg produced no output for %s", req.OutputPath)
	}
	if err := os.Rename(tmp, req.OutputPath); err != nil {
		return fmt.Errorf("finalize clip: %w", err)
	}
	return nil
}
