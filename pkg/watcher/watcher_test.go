package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type WatcherSuite struct {
	suite.Suite
	dir string
}

func TestWatcherSuite(t *testing.T) {
	suite.Run(t, new(WatcherSuite))
}

func (s *WatcherSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *WatcherSuite) run(w *Watcher) (context.CancelFunc, chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()
	// Give the event loop a moment to start selecting.
	time.Sleep(50 * time.Millisecond)
	return cancel, done
}

func (s *WatcherSuite) TestHandlesOnlySupportedFiles() {
	var mu sync.Mutex
	seen := map[string]bool{}
	handled := make(chan struct{}, 10)

	w, err := New(s.dir, func(_ context.Context, path string) error {
		mu.Lock()
		seen[filepath.Base(path)] = true
		mu.Unlock()
		handled <- struct{}{}
		return nil
	}, 2, WithSettleDelay(0))
	s.Require().NoError(err)
	defer w.Stop()

	cancel, done := s.run(w)

	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "notes.mp4"), []byte("x"), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "lecture.srt"), []byte("1\n00:00:01,000 --> 00:00:02,000\nhi\n"), 0o600))

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		s.FailNow("caption file was not handled")
	}

	cancel()
	s.ErrorIs(<-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	s.True(seen["lecture.srt"])
	s.False(seen["notes.mp4"])
}

func (s *WatcherSuite) TestBoundsConcurrencyAndWaitsOnShutdown() {
	var active, peak, finished int32
	release := make(chan struct{})

	w, err := New(s.dir, func(_ context.Context, _ string) error {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&active, -1)
		atomic.AddInt32(&finished, 1)
		return errors.New("handler errors are logged only")
	}, 1, WithSettleDelay(0))
	s.Require().NoError(err)
	defer w.Stop()

	cancel, done := s.run(w)

	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "a.txt"), []byte("hello"), 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "b.json"), []byte("[]"), 0o600))

	s.Eventually(func() bool { return atomic.LoadInt32(&active) == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	close(release)

	s.ErrorIs(<-done, context.Canceled)
	s.Equal(int32(1), atomic.LoadInt32(&peak))
	s.Equal(int32(0), atomic.LoadInt32(&active))
	s.GreaterOrEqual(atomic.LoadInt32(&finished), int32(1))
}

func (s *WatcherSuite) TestNewFailsForMissingDirectory() {
	_, err := New(filepath.Join(s.dir, "missing"), func(context.Context, string) error { return nil }, 0)
	s.Require().Error(err)
}
