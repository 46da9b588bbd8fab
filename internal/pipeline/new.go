package pipeline

import (
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/internal/media"
	"github.com/nguyentantai21042004/transcribe-flow/internal/transcriber"
)

type implPipeline struct {
	media       media.Service
	transcriber transcriber.Transcriber
	logger      logger.Logger
}

// New creates a new Pipeline instance
func New(m media.Service, tr transcriber.Transcriber, log logger.Logger) Pipeline {
	return &implPipeline{
		media:       m,
		transcriber: tr,
		logger:      log,
	}
}
