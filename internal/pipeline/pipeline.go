package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcript"
)

// Extensions that are obviously not media containers. Used to refine the
// no-audio error into "wrong file type" guidance.
var nonMediaExtensions = map[string]bool{
	".md":   true,
	".txt":  true,
	".json": true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".html": true,
}

// Run sequences probe -> validate -> normalize -> transcribe -> format.
// The temporary directory holding an unkept waveform is removed on every
// exit path.
func (p *implPipeline) Run(ctx context.Context, inputPath string, opts Options) (*Result, error) {
	in, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("resolve input path %s: %w", inputPath, err)
	}
	if _, err := os.Stat(in); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file not found: %s: %w", in, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("stat input %s: %w", in, err)
	}

	base := filepath.Base(in)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	p.logger.Info(ctx, "Processing: %s", base)

	info, err := p.media.Probe(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("invalid audio/video file %s: %w", base, err)
	}
	if !info.HasAudio {
		return nil, &media.NoAudioStreamError{
			Path:         in,
			NotMediaType: nonMediaExtensions[strings.ToLower(filepath.Ext(in))],
		}
	}
	if info.DurationSeconds != nil {
		p.logger.Info(ctx, "Duration: %.1f minutes", *info.DurationSeconds/60)
	}

	wavDir := ""
	if opts.KeepWav {
		if wavDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	} else {
		tmpDir, err := os.MkdirTemp("", "transcribe-flow-*")
		if err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)
		wavDir = tmpDir
	}

	normOpts := media.NormalizeOptions{
		SampleRateHz: opts.SampleRateHz,
		Mono:         !opts.Stereo,
		Overwrite:    true,
	}
	p.logger.Info(ctx, "Normalizing audio to %dkHz %s WAV...", normOptsRateKHz(normOpts), channelMode(normOpts))
	extract, err := p.media.Normalize(ctx, in, wavDir, normOpts)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", base, err)
	}

	trOpts := transcriber.DefaultOptions()
	trOpts.LanguageCode = opts.LanguageCode
	p.logger.Info(ctx, "Transcribing (this may take a few minutes)...")
	recognized, err := p.transcriber.Transcribe(ctx, extract.OutputWavPath, trOpts)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", base, err)
	}
	p.logger.Info(ctx, "Transcription complete. Word count: %d", len(recognized.Words))

	turns := transcript.ToSpeakerTurns(recognized.Utterances)

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = stem + "_transcript.md"
	}
	title := opts.Title
	if title == "" {
		title = "Transcript: " + stem
	}

	mdPath, err := transcript.Save(turns, outPath, title)
	if err != nil {
		return nil, fmt.Errorf("save transcript for %s: %w", base, err)
	}

	res := &Result{
		TranscriptPath: mdPath,
		Info:           info,
		Turns:          turns,
		WordCount:      len(recognized.Words),
		SpeakerCount:   countSpeakers(turns),
	}
	if opts.KeepWav {
		res.WavPath = extract.OutputWavPath
	}

	p.logger.Info(ctx, "Detected %d speakers", res.SpeakerCount)
	p.logger.Info(ctx, "Transcript saved: %s", mdPath)

	return res, nil
}

func countSpeakers(turns []transcript.SpeakerTurn) int {
	seen := make(map[string]bool)
	for _, t := range turns {
		seen[t.Speaker] = true
	}
	return len(seen)
}

func normOptsRateKHz(o media.NormalizeOptions) int {
	if o.SampleRateHz == 0 {
		return 16
	}
	return o.SampleRateHz / 1000
}

func channelMode(o media.NormalizeOptions) string {
	if o.Mono {
		return "mono"
	}
	return "stereo"
}
