package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcript"
)

// Pipeline defines the interface for the end-to-end transcription run
type Pipeline interface {
	Run(ctx context.Context, inputPath string, opts Options) (*Result, error)
}

// Options configures a single pipeline run
type Options struct {
	OutputPath   string // defaults to <input stem>_transcript.md in the working directory
	Title        string // defaults to "Transcript: <input stem>"
	LanguageCode string // empty means auto-detect
	KeepWav      bool   // keep the normalized waveform next to the transcript instead of a temp dir
	SampleRateHz int    // defaults to 16000
	Stereo       bool   // skip the mono downmix
}

// Result reports a completed run
type Result struct {
	TranscriptPath string
	WavPath        string // set only when Options.KeepWav
	Info           media.MediaInfo
	Turns          []transcript.SpeakerTurn
	WordCount      int
	SpeakerCount   int
}
