package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/transcribe-flow/internal/transcriber"
)

// FormatTimestamp renders seconds as "[HH:MM:SS]". The fractional part is
// truncated, not rounded. Hours of 100 or more widen past two digits
// rather than clamp.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hh := total / 3600
	mm := (total % 3600) / 60
	ss := total % 60
	return fmt.Sprintf("[%02d:%02d:%02d]", hh, mm, ss)
}

// isDetectedName reports whether a raw speaker identifier looks like a
// resolved human name. Single characters, all-digit ids, and "unknown" are
// generic placeholders. Heuristic: a recognizer emitting multi-character
// numeric names would be misclassified as generic.
func isDetectedName(label string) bool {
	if len(label) == 1 {
		return false
	}
	if isDigits(label) {
		return false
	}
	if strings.EqualFold(label, "unknown") {
		return false
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// speakerLabels maps each raw identifier to its display label. Detected
// names pass through verbatim; generic identifiers are renumbered
// "Speaker 1", "Speaker 2", ... in lexicographic order of the raw ids,
// ranked within the generic subset only.
func speakerLabels(turns []SpeakerTurn) map[string]string {
	seen := make(map[string]bool)
	var generic []string

	labels := make(map[string]string)
	for _, turn := range turns {
		if seen[turn.Speaker] {
			continue
		}
		seen[turn.Speaker] = true
		if isDetectedName(turn.Speaker) {
			labels[turn.Speaker] = turn.Speaker
		} else {
			generic = append(generic, turn.Speaker)
		}
	}

	sort.Strings(generic)
	for i, raw := range generic {
		labels[raw] = fmt.Sprintf("Speaker %d", i+1)
	}

	return labels
}

// Format renders speaker turns as Markdown, one line per turn in input
// order: "[HH:MM:SS] Label: text", joined by newlines with no trailing
// newline. The title parameter is accepted for future use and does not
// affect the emitted body.
func Format(turns []SpeakerTurn, title string) string {
	labels := speakerLabels(turns)

	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s: %s", FormatTimestamp(turn.StartSeconds), labels[turn.Speaker], turn.Text)
	}
	return b.String()
}

// ToSpeakerTurns converts recognizer utterances into speaker turns:
// millisecond offsets become seconds, text is trimmed, and utterances with
// empty text are dropped. Input order is preserved.
func ToSpeakerTurns(utterances []transcriber.Utterance) []SpeakerTurn {
	turns := make([]SpeakerTurn, 0, len(utterances))
	for _, u := range utterances {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		turns = append(turns, SpeakerTurn{
			Speaker:      u.Speaker,
			StartSeconds: float64(u.StartMs) / 1000.0,
			EndSeconds:   float64(u.EndMs) / 1000.0,
			Text:         text,
		})
	}
	return turns
}

// Save writes the formatted transcript as UTF-8 to outputPath, creating
// parent directories as needed, and returns the resolved path.
func Save(turns []SpeakerTurn, outputPath, title string) (string, error) {
	out, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolve output path %s: %w", outputPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(out, []byte(Format(turns, title)), 0644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return out, nil
}
