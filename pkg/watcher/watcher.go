package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/transcript"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"github.com/fsnotify/fsnotify"
)

const (
	DefaultMaxConcurrent = 2
	DefaultSettleDelay   = 500 * time.Millisecond
)

// EventHandler processes one caption file dropped into the inbox.
type EventHandler func(ctx context.Context, filePath string) error

// Watcher runs handler for every supported caption file created in a
// directory, at most maxConcurrent at a time.
type Watcher struct {
	inputDir      string
	handler       EventHandler
	watcher       *fsnotify.Watcher
	maxConcurrent int
	settleDelay   time.Duration
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

type Option func(*Watcher)

// WithSettleDelay sets how long to wait after a create event before the file
// is handed off, so writers can finish.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.settleDelay = d
		}
	}
}

func New(inputDir string, handler EventHandler, maxConcurrent int, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	if err := fsWatcher.Add(inputDir); err != nil {
		_ = fsWatcher.Close()
		return nil, utils.WrapIfNotNil(err, inputDir)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	w := &Watcher{
		inputDir:      inputDir,
		handler:       handler,
		watcher:       fsWatcher,
		maxConcurrent: maxConcurrent,
		settleDelay:   DefaultSettleDelay,
		semaphore:     make(chan struct{}, maxConcurrent),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start blocks until ctx is done, then waits for in-flight handlers.
func (w *Watcher) Start(ctx context.Context) error {
	log := logging.NewLogger(ctx)
	log.Infof("watcher.Start dir=%s max_concurrent=%d extensions=%v", w.inputDir, w.maxConcurrent, transcript.SupportedExtensions)

	for {
		select {
		case <-ctx.Done():
			log.Info("watcher.Start waiting for in-flight files")
			w.wg.Wait()
			log.Info("watcher.Start stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !transcript.IsSupportedFile(event.Name) {
				log.Debugf("watcher.Start ignoring file=%s", event.Name)
				continue
			}

			log.Infof("watcher.Start new caption file=%s", event.Name)
			if w.settleDelay > 0 {
				time.Sleep(w.settleDelay)
			}

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					defer func() {
						if r := recover(); r != nil {
							log := logging.NewLogger(ctx)
							log.Errorf("watcher.handle file=%s panic: %v", filePath, r)
							utils.LogStack(log, "watcher.handle")
						}
					}()

					if err := w.handler(ctx, filePath); err != nil {
						logging.NewLogger(ctx).Errorf("watcher.handle file=%s error: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Errorf("watcher.Start error: %v", err)
		}
	}
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
