package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrAPIKeyMissing is returned when the transcription credential is absent.
// It is raised before any network call is attempted.
var ErrAPIKeyMissing = errors.New("ASSEMBLYAI_API_KEY environment variable not set. Add it to your .env file or set it in your environment")

// LoadEnv loads a .env file from the working directory when present.
// Missing files are not an error; the environment may already be set.
func LoadEnv() {
	_ = godotenv.Load()
}

// AssemblyAIKey returns the AssemblyAI API credential from the environment.
func AssemblyAIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv("ASSEMBLYAI_API_KEY"))
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}

// GeminiKeys returns the Gemini API keys for summarization, if any.
// Accepts GEMINI_API_KEYS as a comma-separated list, or GEMINI_API_KEY.
func GeminiKeys() []string {
	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
