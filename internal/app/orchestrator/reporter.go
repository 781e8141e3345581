package orchestrator

import "github.com/0xb0rn3/blackutility/internal/domain/model/workitem"

// Reporter is the presentation boundary. Implementations may throttle their
// own output; the orchestrator's counters are never affected by it.
type Reporter interface {
	ItemStarted(name string, snapshot Snapshot)
	ItemResolved(item *workitem.Item, snapshot Snapshot)
	RunFinished(summary Summary)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) ItemStarted(string, Snapshot)             {}
func (NopReporter) ItemResolved(*workitem.Item, Snapshot)    {}
func (NopReporter) RunFinished(Summary)                      {}
