package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

// Normalize converts any supported audio/video file into a WAV suitable for
// speech-to-text: PCM 16-bit little-endian, mono by default, at the
// configured sample rate. The first audio stream is selected explicitly to
// keep multi-track containers deterministic; video streams are dropped.
func (m *implMedia) Normalize(ctx context.Context, inputFile, outputDir string, opts NormalizeOptions) (*AudioExtractResult, error) {
	if err := m.executor.LookPath("ffmpeg"); err != nil {
		return nil, err
	}

	if opts.SampleRateHz == 0 {
		opts.SampleRateHz = 16000
	}

	info, err := m.Probe(ctx, inputFile)
	if err != nil {
		return nil, err
	}
	if !info.HasAudio {
		return nil, &NoAudioStreamError{Path: info.Path}
	}

	outDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	stem := strings.TrimSuffix(filepath.Base(info.Path), filepath.Ext(info.Path))
	outWav := filepath.Join(outDir, stem+"_normalized.wav")

	args := []string{"-hide_banner"}
	if opts.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	args = append(args,
		"-i", info.Path,
		"-map", "0:a:0", // first audio stream only
		"-vn",
	)
	if opts.Mono {
		args = append(args, "-ac", "1")
	}
	args = append(args,
		"-ar", strconv.Itoa(opts.SampleRateHz),
		"-c:a", "pcm_s16le",
		outWav,
	)

	m.logger.Info(ctx, "Normalizing audio: %s -> %s", filepath.Base(info.Path), outWav)

	_, stderr, err := m.executor.Execute(ctx, "ffmpeg", args...)
	if err != nil {
		return nil, &ProcessError{
			Tool: "ffmpeg",
			Err:  err,
			Tail: executor.TailLines(stderr, failTailLines),
		}
	}

	m.logger.Debug(ctx, "Audio normalized: %s", outWav)

	return &AudioExtractResult{
		InputPath:     info.Path,
		Info:          info,
		OutputWavPath: outWav,
		StderrTail:    executor.TailLines(stderr, successTailLines),
	}, nil
}
