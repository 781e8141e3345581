// Package cancel implements the cooperative cancellation flag set by signal
// delivery and polled by the orchestration loop. Once set it stays set for
// the rest of the process lifetime.
package cancel

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"time"
)

// Cause records which condition fired.
type Cause int32

const (
	Running Cause = iota
	Interrupted
	Terminated
	TimedOut
)

func (c Cause) String() string {
	switch c {
	case Running:
		return "running"
	case Interrupted:
		return "interrupted"
	case Terminated:
		return "terminated"
	case TimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// State is the tri-state cancellation flag. Writers are the signal watcher
// and the run-deadline timer; readers poll at loop boundaries.
type State struct {
	cause atomic.Int32
}

// NewState returns a state in the running condition.
func NewState() *State {
	return &State{}
}

// Requested reports whether cancellation or timeout was signalled.
func (s *State) Requested() bool {
	return Cause(s.cause.Load()) != Running
}

// Cause returns the recorded condition.
func (s *State) Cause() Cause {
	return Cause(s.cause.Load())
}

// Request flips the flag exactly once; later conditions never overwrite the
// first. The signal watcher and run-deadline timer go through here, and it
// doubles as programmatic shutdown.
func (s *State) Request(c Cause) {
	s.cause.CompareAndSwap(int32(Running), int32(c))
}

// Install registers the signal handlers and the optional overall run
// deadline (0 disables it). The returned context is cancelled when either
// fires; the returned stop function releases the watcher resources.
func (s *State) Install(parent context.Context, runTimeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancelCtx := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signalsToHandle()...)

	var timer *time.Timer
	if runTimeout > 0 {
		timer = time.AfterFunc(runTimeout, func() {
			s.Request(TimedOut)
			cancelCtx()
		})
	}

	go func() {
		select {
		case sig := <-sigCh:
			if isTerminate(sig) {
				s.Request(Terminated)
			} else {
				s.Request(Interrupted)
			}
			cancelCtx()
		case <-ctx.Done():
		}
	}()

	stop := func() {
		signal.Stop(sigCh)
		if timer != nil {
			timer.Stop()
		}
		cancelCtx()
	}
	return ctx, stop
}
