package media

import "fmt"

// ProcessError reports a non-zero exit from ffprobe or ffmpeg, carrying a
// bounded tail of its stderr.
type ProcessError struct {
	Tool string
	Err  error
	Tail string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s failed: %v. Last stderr lines:\n%s", e.Tool, e.Err, e.Tail)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// NoAudioStreamError indicates the probed file has no audio track.
// NotMediaType marks files whose extension suggests they are not media at all,
// so callers can give better guidance.
type NoAudioStreamError struct {
	Path         string
	NotMediaType bool
}

func (e *NoAudioStreamError) Error() string {
	if e.NotMediaType {
		return fmt.Sprintf("invalid file type: %s. Provide an audio or video file (e.g. MP3, MP4, WAV, M4A, FLAC)", e.Path)
	}
	return fmt.Sprintf("no audio stream found in file: %s. The file must contain an audio track to be transcribed", e.Path)
}
