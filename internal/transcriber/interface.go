package transcriber

import "context"

// Options configures a transcription request
type Options struct {
	SpeakerLabels bool
	Punctuate     bool
	FormatText    bool
	LanguageCode  string // empty means auto-detect
}

// DefaultOptions enables diarization, punctuation, and text formatting.
func DefaultOptions() Options {
	return Options{
		SpeakerLabels: true,
		Punctuate:     true,
		FormatText:    true,
	}
}

// Word is a single recognized word with timing.
type Word struct {
	Text    string
	StartMs int64
	EndMs   int64
	Speaker string
}

// Utterance is a contiguous speech segment attributed to one speaker.
// Speaker may be an opaque ordinal id or a resolved name.
type Utterance struct {
	Speaker string
	StartMs int64
	EndMs   int64
	Text    string
}

// Result is a completed transcription.
type Result struct {
	Words      []Word
	Utterances []Utterance
}

// Transcriber defines the interface for remote speech-to-text with diarization
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error)
}
