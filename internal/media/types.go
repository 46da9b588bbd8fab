package media

// MediaInfo describes a probed media file. Codec names record the first
// stream encountered per type.
type MediaInfo struct {
	Path            string
	DurationSeconds *float64 // nil when the container reports no parsable duration
	HasAudio        bool
	HasVideo        bool
	AudioCodec      string
	VideoCodec      string
}

// AudioExtractResult describes a completed normalization. StderrTail holds
// the last few lines of converter output for troubleshooting.
type AudioExtractResult struct {
	InputPath     string
	Info          MediaInfo
	OutputWavPath string
	StderrTail    string
}

// NormalizeOptions configures the normalization target encoding
type NormalizeOptions struct {
	SampleRateHz int
	Mono         bool
	Overwrite    bool
}

// DefaultNormalizeOptions returns the canonical STT target: 16kHz mono,
// overwriting any previous output.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		SampleRateHz: 16000,
		Mono:         true,
		Overwrite:    true,
	}
}
