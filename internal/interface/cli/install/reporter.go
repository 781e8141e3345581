package install

import (
	"time"

	"github.com/0xb0rn3/blackutility/internal/app/orchestrator"
	"github.com/0xb0rn3/blackutility/internal/domain/model/workitem"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/common"
)

// logReporter narrates run progress through the shared logger. Intermediate
// progress lines are throttled; terminal outcomes always print.
type logReporter struct {
	log      *common.Logger
	interval time.Duration
	last     time.Time
}

func newLogReporter(log *common.Logger) *logReporter {
	return &logReporter{log: log, interval: time.Second}
}

func (r *logReporter) ItemStarted(name string, snap orchestrator.Snapshot) {
	now := time.Now()
	if now.Sub(r.last) < r.interval {
		return
	}
	r.last = now
	r.log.Info("[%d/%d] installing %s", snap.Completed+1, snap.Total, name)
}

func (r *logReporter) ItemResolved(item *workitem.Item, snap orchestrator.Snapshot) {
	switch item.Outcome() {
	case workitem.OutcomeSucceeded:
		r.log.Info("[%d/%d] %s installed", snap.Completed, snap.Total, item.Name())
	case workitem.OutcomeFailed:
		r.log.Warn("[%d/%d] %s failed after %d attempts (%s)",
			snap.Completed, snap.Total, item.Name(), item.Attempts(), item.LastCause())
	}
}

func (r *logReporter) RunFinished(summary orchestrator.Summary) {
	if summary.Failed > 0 {
		r.log.Warn("%d targets failed; see the package log for command output", summary.Failed)
	}
	if summary.Pending > 0 {
		r.log.Warn("%d targets pending (run stopped: %s)", summary.Pending, summary.Stopped)
	}
}
