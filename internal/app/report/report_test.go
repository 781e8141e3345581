package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xb0rn3/blackutility/internal/app/cancel"
	"github.com/0xb0rn3/blackutility/internal/app/orchestrator"
	"github.com/0xb0rn3/blackutility/internal/domain/model/workitem"
)

func sampleSummary() orchestrator.Summary {
	ok := workitem.New("nmap")
	ok.RecordAttempt(time.Now(), workitem.CauseNone)
	ok.MarkSucceeded()

	bad := workitem.New("toolB")
	bad.RecordAttempt(time.Now(), workitem.CauseExitStatus)
	bad.MarkFailed()

	pending := workitem.New("toolC")

	return orchestrator.Summary{
		RunID:     "01TESTRUNID",
		Total:     3,
		Completed: 2,
		Succeeded: 1,
		Failed:    1,
		Pending:   1,
		Stopped:   cancel.Interrupted,
		Started:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Duration:  90 * time.Second,
		Items:     []*workitem.Item{ok, bad, pending},
	}
}

func TestFromSummary(t *testing.T) {
	r := FromSummary(sampleSummary())

	assert.Equal(t, "01TESTRUNID", r.RunID)
	assert.Equal(t, "2026-08-30T12:00:00Z", r.StartedAt)
	assert.Equal(t, 90.0, r.DurationSec)
	assert.Equal(t, "interrupted", r.StopReason)
	assert.Equal(t, []string{"nmap"}, r.Succeeded)
	assert.Equal(t, []string{"toolB"}, r.Failed)
	assert.Equal(t, []string{"toolC"}, r.Pending)
	assert.InDelta(t, 33.3, r.SuccessRate, 0.1)
}

func TestFromSummary_EmptyRun(t *testing.T) {
	r := FromSummary(orchestrator.Summary{Stopped: cancel.Running})

	assert.Equal(t, 0.0, r.SuccessRate)
	// Empty slices, not null, so consumers can index unconditionally.
	assert.NotNil(t, r.Succeeded)
	assert.NotNil(t, r.Failed)
	assert.NotNil(t, r.Pending)
}

func TestWrite_ProducesValidJSON(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Write(fs, "/var/log/blackutility-report.json", FromSummary(sampleSummary()))
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/var/log/blackutility-report.json")
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.Total)
	assert.Equal(t, []string{"toolC"}, decoded.Pending)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, Write(fs, "/out/report.json", FromSummary(sampleSummary())))

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.json", entries[0].Name())
}
