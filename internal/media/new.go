package media

import (
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
	"github.com/nguyentantai21042004/transcribe-flow/pkg/executor"
)

type implMedia struct {
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new media Service instance
func New(exec executor.Executor, log logger.Logger) Service {
	return &implMedia{
		executor: exec,
		logger:   log,
	}
}
