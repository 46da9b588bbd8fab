package transcriber

import "errors"

// ErrNoUtterances means the service completed but produced nothing to render.
var ErrNoUtterances = errors.New("no utterances returned. The audio may be unclear or speaker labels may not be supported for this audio")

// RecognitionError reports a terminal error state from the transcription service.
type RecognitionError struct {
	Message string
}

func (e *RecognitionError) Error() string {
	return "transcription failed: " + e.Message
}
