package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
)

// spinnerFrames animate the spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner shows an animated status line with the elapsed time while a long
// step runs. It stops on its own when its context is cancelled. Start and
// Stop must be called from the same goroutine.
type spinner struct {
	out     io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc

	started  bool
	done     chan struct{} // closed when the animation goroutine exits
	stopOnce sync.Once
	stopped  atomic.Bool

	mu    sync.Mutex
	width int
}

// newSpinner creates a spinner writing to out. Animation is skipped when out
// is not a terminal, so piped output stays clean.
func newSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{out: out, message: message, ctx: ctx, cancel: cancel}
}

// Start begins the animation.
func (s *spinner) Start() {
	if s.started {
		return
	}
	s.started = true
	if !isTerminal(s.out) {
		return
	}
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		start := time.Now()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				line := fmt.Sprintf("%s %s", frame, s.message)
				elapsed := fmt.Sprintf(" %.1fs", time.Since(start).Seconds())
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s%s", styleIconInfo.Render(line), StyleDim.Render(elapsed))
				s.width = max(s.width, len(line)+len(elapsed))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the line. It is safe to call more
// than once, and before Start.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		s.cancel()
		if s.done != nil {
			<-s.done
		}
	})
}

// Cancelled reports whether the spinner ended because its parent context
// was cancelled rather than through Stop.
func (s *spinner) Cancelled() bool {
	return s.ctx.Err() != nil && !s.stopped.Load()
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+2))
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
