package transcriber

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

const defaultBaseURL = "https://api.assemblyai.com/v2"

type implTranscriber struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	pollInterval time.Duration
	logger       logger.Logger
}

// New creates a Transcriber backed by the AssemblyAI REST API.
// pollInterval controls how often a pending transcript is re-checked.
func New(apiKey string, pollInterval time.Duration, log logger.Logger) Transcriber {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	return &implTranscriber{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: 5 * time.Minute},
		pollInterval: pollInterval,
		logger:       log,
	}
}
