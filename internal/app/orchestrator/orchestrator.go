// Package orchestrator implements the sequential installation loop: one
// external install invocation per work item under a per-item deadline,
// bounded retries with a fixed cooldown, aggregate progress, and a summary
// emitted on every exit path.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/0xb0rn3/blackutility/internal/app/cancel"
	"github.com/0xb0rn3/blackutility/internal/domain/model/workitem"
)

// Installer performs one synchronous install invocation. pkgmgr.Manager
// satisfies it.
type Installer interface {
	Install(ctx context.Context, pkg string) error
}

// Logf matches the common logger's formatting functions.
type Logf func(format string, args ...interface{})

// Config bounds a run. Zero values are replaced by the original installer's
// constants.
type Config struct {
	MaxRetries    int           // attempts per item, default 3
	RetryCooldown time.Duration // sleep between attempts, default 2s
	ItemTimeout   time.Duration // wall-clock bound per invocation, default 300s
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryCooldown <= 0 {
		c.RetryCooldown = 2 * time.Second
	}
	if c.ItemTimeout <= 0 {
		c.ItemTimeout = 300 * time.Second
	}
	return c
}

// Summary is the aggregate outcome of one run.
type Summary struct {
	RunID     string
	Total     int
	Completed int
	Succeeded int
	Failed    int
	Pending   int
	Stopped   cancel.Cause // Running means the list was exhausted
	Started   time.Time
	Duration  time.Duration
	Items     []*workitem.Item
}

// Line renders the canonical one-line summary.
func (s Summary) Line() string {
	return fmt.Sprintf("%d/%d items succeeded", s.Succeeded, s.Total)
}

// Orchestrator runs the installation loop. It owns the progress counters
// and is driven by exactly one goroutine.
type Orchestrator struct {
	installer Installer
	state     *cancel.State
	cfg       Config
	reporter  Reporter
	progress  Progress

	infof Logf
	warnf Logf
	errf  Logf
}

// New creates an orchestrator. reporter may be nil.
func New(installer Installer, state *cancel.State, cfg Config, reporter Reporter, infof, warnf, errf Logf) *Orchestrator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Orchestrator{
		installer: installer,
		state:     state,
		cfg:       cfg.withDefaults(),
		reporter:  reporter,
		infof:     infof,
		warnf:     warnf,
		errf:      errf,
	}
}

// Progress exposes the counters for reporting collaborators.
func (o *Orchestrator) Progress() *Progress {
	return &o.progress
}

// Run consumes the work list in order. Items that fail their attempts are
// recorded and the loop continues; cancellation stops before the next
// dispatch and leaves the rest pending. One summary is always produced.
func (o *Orchestrator) Run(ctx context.Context, targets []string) Summary {
	started := time.Now()
	runID := newRunID(started)

	items := make([]*workitem.Item, len(targets))
	for i, name := range targets {
		items[i] = workitem.New(name)
	}
	o.progress.setTotal(len(items))

	o.infof("run %s: installing %d targets", runID, len(items))

	for _, item := range items {
		if o.state.Requested() {
			o.warnf("stopping before %s: %s", item.Name(), o.state.Cause())
			break
		}

		o.progress.setCurrent(item.Name())
		o.reporter.ItemStarted(item.Name(), o.progress.Snapshot())

		o.runItem(ctx, item)

		if !item.Resolved() {
			// Cancellation between attempts; the item stays pending.
			break
		}
		o.progress.complete(item.Outcome() == workitem.OutcomeSucceeded)
		o.reporter.ItemResolved(item, o.progress.Snapshot())
	}

	summary := o.summarize(runID, started, items)
	o.infof("%s", summary.Line())
	o.reporter.RunFinished(summary)
	return summary
}

// runItem drives one item through pending -> attempting -> {succeeded |
// retrying -> attempting | failed}.
func (o *Orchestrator) runItem(ctx context.Context, item *workitem.Item) {
	for attempt := 1; attempt <= o.cfg.MaxRetries; attempt++ {
		if o.state.Requested() {
			return
		}

		attemptCtx, disarm := context.WithTimeout(ctx, o.cfg.ItemTimeout)
		err := o.installer.Install(attemptCtx, item.Name())
		timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		disarm()

		switch {
		case err == nil:
			item.RecordAttempt(time.Now(), workitem.CauseNone)
			item.MarkSucceeded()
			return
		case timedOut:
			item.RecordAttempt(time.Now(), workitem.CauseTimeout)
			o.warnf("%s: attempt %d/%d timed out after %s",
				item.Name(), attempt, o.cfg.MaxRetries, o.cfg.ItemTimeout)
		default:
			item.RecordAttempt(time.Now(), workitem.CauseExitStatus)
			o.warnf("%s: attempt %d/%d failed: %v",
				item.Name(), attempt, o.cfg.MaxRetries, err)
		}

		// Cancellation observed immediately after the external call returns.
		if o.state.Requested() {
			return
		}

		if attempt < o.cfg.MaxRetries {
			o.warnf("retrying %s (attempt %d/%d)", item.Name(), attempt+1, o.cfg.MaxRetries)
			if !o.cooldown(ctx) {
				return
			}
		}
	}

	item.MarkFailed()
	o.errf("%s: failed after %d attempts (last cause: %s)",
		item.Name(), item.Attempts(), item.LastCause())
}

// cooldown sleeps between attempts; a cancelled context cuts it short.
func (o *Orchestrator) cooldown(ctx context.Context) bool {
	timer := time.NewTimer(o.cfg.RetryCooldown)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (o *Orchestrator) summarize(runID string, started time.Time, items []*workitem.Item) Summary {
	s := Summary{
		RunID:    runID,
		Total:    len(items),
		Stopped:  o.state.Cause(),
		Started:  started,
		Duration: time.Since(started),
		Items:    items,
	}
	for _, item := range items {
		switch item.Outcome() {
		case workitem.OutcomeSucceeded:
			s.Succeeded++
			s.Completed++
		case workitem.OutcomeFailed:
			s.Failed++
			s.Completed++
		default:
			s.Pending++
		}
	}
	return s
}

func newRunID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
