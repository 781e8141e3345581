// Package report writes the end-of-run installation report as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/0xb0rn3/blackutility/internal/app/orchestrator"
	"github.com/0xb0rn3/blackutility/internal/domain/model/workitem"
)

// Report is the persisted outcome of one run.
type Report struct {
	RunID       string   `json:"run_id"`
	StartedAt   string   `json:"started_at"` // UTC RFC3339
	DurationSec float64  `json:"duration_sec"`
	StopReason  string   `json:"stop_reason"`
	Total       int      `json:"total"`
	Completed   int      `json:"completed"`
	Succeeded   []string `json:"succeeded"`
	Failed      []string `json:"failed"`
	Pending     []string `json:"pending"`
	SuccessRate float64  `json:"success_rate"`
}

// FromSummary converts an orchestrator summary into a report.
func FromSummary(s orchestrator.Summary) Report {
	r := Report{
		RunID:       s.RunID,
		StartedAt:   s.Started.UTC().Format(time.RFC3339),
		DurationSec: s.Duration.Seconds(),
		StopReason:  s.Stopped.String(),
		Total:       s.Total,
		Completed:   s.Completed,
		Succeeded:   []string{},
		Failed:      []string{},
		Pending:     []string{},
	}
	for _, item := range s.Items {
		switch item.Outcome() {
		case workitem.OutcomeSucceeded:
			r.Succeeded = append(r.Succeeded, item.Name())
		case workitem.OutcomeFailed:
			r.Failed = append(r.Failed, item.Name())
		default:
			r.Pending = append(r.Pending, item.Name())
		}
	}
	if r.Total > 0 {
		r.SuccessRate = float64(len(r.Succeeded)) / float64(r.Total) * 100
	}
	return r
}

// Write persists the report atomically (temp file + rename).
func Write(fs afero.Fs, path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFileAtomic(fs, path, data)
}

func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
