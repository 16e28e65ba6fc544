package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line until stopped or until its context ends.
type Spinner struct {
	message string
	out     io.Writer
	ctx     context.Context

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu        sync.Mutex
	started   bool
	cancelled bool
}

// newSpinner returns a spinner that stops itself when ctx ends.
func newSpinner(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		ctx:     ctx,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. It must be called at most once.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.mu.Lock()
				s.cancelled = true
				s.mu.Unlock()
				s.clearLine()
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call repeatedly.
func (s *Spinner) Stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	s.once.Do(func() { close(s.stop) })
	<-s.stopped
	s.clearLine()
}

// StopWithError stops the spinner and prints message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Finish stops the spinner and reports how the tracked work ended.
func (s *Spinner) Finish(err error) {
	switch {
	case err == nil:
		s.Stop()
	case s.Cancelled():
		s.StopWithError("Capture cancelled")
	default:
		s.StopWithError("Capture failed")
	}
}

// Cancelled reports whether the spinner's context has ended.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled || s.ctx.Err() != nil
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
