package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

// Tail sizes for diagnostic excerpts. Failures keep a longer tail for
// triage; successful conversions keep a short informational one.
const (
	failTailLines    = 25
	successTailLines = 10
)

// ffprobe JSON output shapes. Only the fields the prober reads.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
}

// Probe runs ffprobe on the file and reports stream and duration metadata.
// An absent or unparsable duration degrades to nil rather than failing.
func (m *implMedia) Probe(ctx context.Context, path string) (MediaInfo, error) {
	if err := m.executor.LookPath("ffprobe"); err != nil {
		return MediaInfo{}, err
	}

	abs, err := resolvePath(path)
	if err != nil {
		return MediaInfo{}, err
	}

	m.logger.Debug(ctx, "Probing media: %s", abs)

	stdout, stderr, err := m.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		abs,
	)
	if err != nil {
		return MediaInfo{}, &ProcessError{
			Tool: "ffprobe",
			Err:  err,
			Tail: executor.TailLines(stderr, failTailLines),
		}
	}

	var out ffprobeOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		return MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := MediaInfo{Path: abs}

	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		info.DurationSeconds = &d
	}

	for _, s := range out.Streams {
		switch s.CodecType {
		case "audio":
			info.HasAudio = true
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		case "video":
			info.HasVideo = true
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
			}
		}
	}

	return info, nil
}

// resolvePath expands ~, makes the path absolute, and verifies it exists.
func resolvePath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}

	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s: %w", abs, fs.ErrNotExist)
		}
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	return abs, nil
}
