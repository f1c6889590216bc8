package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Osmanoor/visper/internal/domain/entity"
)

// Prober reads stream metadata through ffprobe.
type Prober struct {
	ffprobePath string
}

func NewProber(ffprobePath string) (*Prober, error) {
	path, err := exec.LookPath(ffprobePath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found at %q: %w", ffprobePath, err)
	}
	return &Prober{ffprobePath: path}, nil
}

func (p *Prober) Probe(ctx context.Context, path string) (*entity.SourceVideo, error) {
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	video := &entity.SourceVideo{Path: path}
	if dur, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		video.Duration = dur
	}
	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		video.Width = stream.Width
		video.Height = stream.Height
		video.FrameRate = parseFrameRate(stream.RFrameRate)
		break
	}

	if video.Width <= 0 || video.Height <= 0 {
		return nil, fmt.Errorf("no video stream in %s", path)
	}
	if video.FrameRate <= 0 {
		return nil, fmt.Errorf("could not determine frame rate of %s", path)
	}
	if video.Duration <= 0 {
		return nil, fmt.Errorf("could not determine duration of %s", path)
	}
	return video, nil
}

// probeResult matches the ffprobe JSON output structure.
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// parseFrameRate parses an ffprobe rational like "30000/1001".
func parseFrameRate(s string) float64 {
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}
