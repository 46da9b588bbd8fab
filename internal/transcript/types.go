package transcript

// SpeakerTurn is a continuous segment of speech from one speaker.
// Speaker holds the raw identifier from the recognizer, which may be an
// ordinal id ("0", "A") or a detected proper name. Text is never empty.
type SpeakerTurn struct {
	Speaker      string
	StartSeconds float64
	EndSeconds   float64
	Text         string
}
