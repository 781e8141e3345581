// Package workitem models one installable target drawn from the work list
// and the outcome of its install attempts.
package workitem

import (
	"fmt"
	"time"
)

// Outcome is the terminal classification of a work item.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// FailureCause distinguishes why the last attempt failed.
type FailureCause int

const (
	CauseNone FailureCause = iota
	CauseExitStatus
	CauseTimeout
)

func (c FailureCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseExitStatus:
		return "exit-status"
	case CauseTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("cause(%d)", int(c))
	}
}

// Item is one named install target. Items are produced once from the work
// list, consumed in list order, and never reordered.
type Item struct {
	name        string
	attempts    int
	lastAttempt time.Time
	outcome     Outcome
	cause       FailureCause
}

// New creates a pending item for the given target name.
func New(name string) *Item {
	return &Item{name: name, outcome: OutcomePending}
}

// RecordAttempt notes one attempt and its failure cause (CauseNone for a
// success). It does not decide the terminal outcome; that is the
// orchestrator's call via MarkSucceeded / MarkFailed.
func (i *Item) RecordAttempt(at time.Time, cause FailureCause) {
	i.attempts++
	i.lastAttempt = at
	i.cause = cause
}

// MarkSucceeded records the terminal success outcome.
func (i *Item) MarkSucceeded() {
	i.outcome = OutcomeSucceeded
}

// MarkFailed records the terminal failure outcome after retries exhausted.
func (i *Item) MarkFailed() {
	i.outcome = OutcomeFailed
}

// Resolved reports whether the item reached a terminal outcome.
func (i *Item) Resolved() bool {
	return i.outcome != OutcomePending
}

func (i *Item) Name() string            { return i.name }
func (i *Item) Attempts() int           { return i.attempts }
func (i *Item) LastAttempt() time.Time  { return i.lastAttempt }
func (i *Item) Outcome() Outcome        { return i.outcome }
func (i *Item) LastCause() FailureCause { return i.cause }
