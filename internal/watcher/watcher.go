package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/transcribe-flow/internal/logger"
)

// mediaExtensions covers the audio and video containers the pipeline accepts.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".m4v":  true,
	".flv":  true,
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the input directory for new audio/video files.
// Each file is transcribed in its own goroutine, bounded by the semaphore;
// every pipeline run still owns its temp directory exclusively.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing transcriptions to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New media file detected: %s", event.Name)

			// Small delay to let the file finish writing
			time.Sleep(500 * time.Millisecond)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to transcribe %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying fsnotify watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}
