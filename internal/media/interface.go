package media

import "context"

// Service defines media inspection and audio normalization operations
type Service interface {
	// Probe inspects a media file and reports stream/duration metadata.
	Probe(ctx context.Context, path string) (MediaInfo, error)

	// Normalize converts the input into a PCM 16-bit WAV in outputDir,
	// suitable for speech-to-text. Fails before invoking the converter
	// when the input carries no audio stream.
	Normalize(ctx context.Context, inputFile, outputDir string, opts NormalizeOptions) (*AudioExtractResult, error)
}
