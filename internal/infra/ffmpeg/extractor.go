package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Osmanoor/visper/internal/domain/port"
	"github.com/Osmanoor/visper/internal/infra/fsx"
)

// pipeWaitDelay bounds how long Wait blocks on the process's I/O pipes
// after the process is killed. Without it an orphaned grandchild that
// inherited stdout keeps the call (and its worker slot) blocked long
// past the deadline.
const pipeWaitDelay = 3 * time.Second

// Extractor drives the ffmpeg binary to cut, crop and re-encode one
// clip per call. The process is scoped to the call's context: on
// cancellation or timeout it is killed and no output file is left at
// the target path.
type Extractor struct {
	ffmpegPath string
	videoCodec string
	audioCodec string
	preset     string
	crf        int
	logger     *zap.Logger
}

type ExtractorConfig struct {
	FFmpegPath string
	VideoCodec string
	AudioCodec string
	Preset     string
	CRF        int
}

func NewExtractor(cfg ExtractorConfig, logger *zap.Logger) (*Extractor, error) {
	path, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found at %q: %w", cfg.FFmpegPath, err)
	}
	return &Extractor{
		ffmpegPath: path,
		videoCodec: cfg.VideoCodec,
		audioCodec: cfg.AudioCodec,
		preset:     cfg.Preset,
		crf:        cfg.CRF,
		logger:     logger,
	}, nil
}

func (e *Extractor) ExtractClip(ctx context.Context, req port.ExtractRequest) error {
	tmp := fsx.TempPath(req.OutputPath)
	defer os.Remove(tmp)

	var cmdFile string
	if !req.Crop.Static() {
		f, err := os.CreateTemp("", "visper-sendcmd-*.txt")
		if err != nil {
			return fmt.Errorf("create sendcmd file: %w", err)
		}
		cmdFile = f.Name()
		defer os.Remove(cmdFile)
		if _, err := f.Write(SendCmdScript(req.Crop, req.FrameRate)); err != nil {
			f.Close()
			return fmt.Errorf("write sendcmd file: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	args := e.buildArgs(req, cmdFile, tmp)
	e.logger.Debug("invoking ffmpeg", zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	cmd.WaitDelay = pipeWaitDelay
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg terminated: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg error: %w, output: %s", err, tail(output, 2048))
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

func (e *Extractor) buildArgs(req port.ExtractRequest, cmdFile, outPath string) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-ss", formatSeconds(req.Window.Seek),
		"-i", req.SourcePath,
		"-t", formatSeconds(req.Window.Duration),
		"-vf", CropFilter(req.Crop, cmdFile),
		"-c:v", e.videoCodec,
		"-preset", e.preset,
		"-crf", strconv.Itoa(e.crf),
		"-c:a", e.audioCodec,
		"-movflags", "+faststart",
	}
	return append(args, outPath)
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 6, 64)
}

func tail(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}
