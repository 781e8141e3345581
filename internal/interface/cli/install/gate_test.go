package install

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func gateCommand(input string) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&bytes.Buffer{})
	return cmd
}

// silentCommand has an input that never delivers a line.
func silentCommand() *cobra.Command {
	cmd := &cobra.Command{}
	pr, _ := io.Pipe()
	cmd.SetIn(pr)
	cmd.SetOut(&bytes.Buffer{})
	return cmd
}

func TestConfirm_ExactTokenAccepted(t *testing.T) {
	cmd := gateCommand("AGREE\n")
	assert.NoError(t, confirm(context.Background(), cmd, "AGREE", time.Second))
}

func TestConfirm_SurroundingWhitespaceTolerated(t *testing.T) {
	cmd := gateCommand("  AGREE  \n")
	assert.NoError(t, confirm(context.Background(), cmd, "AGREE", time.Second))
}

func TestConfirm_WrongTokenDeclined(t *testing.T) {
	for _, input := range []string{"agree\n", "yes\n", "AGREED\n", "\n"} {
		cmd := gateCommand(input)
		err := confirm(context.Background(), cmd, "AGREE", time.Second)
		assert.Error(t, err, "input %q should decline", input)
	}
}

func TestConfirm_EOFAborts(t *testing.T) {
	cmd := gateCommand("")
	err := confirm(context.Background(), cmd, "AGREE", time.Second)
	assert.Error(t, err)
}

func TestConfirm_TimeoutAborts(t *testing.T) {
	cmd := silentCommand()

	start := time.Now()
	err := confirm(context.Background(), cmd, "AGREE", 50*time.Millisecond)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), time.Second)
}

func TestConfirm_CancelledRunAbortsPrompt(t *testing.T) {
	cmd := silentCommand()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A signal delivered before (or during) the prompt must abort it
	// immediately instead of waiting out the input timeout.
	start := time.Now()
	err := confirm(ctx, cmd, "AGREE", time.Minute)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "aborted")
	assert.Less(t, time.Since(start), time.Second)
}

func TestConfirm_CancellationDuringPrompt(t *testing.T) {
	cmd := silentCommand()
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := confirm(ctx, cmd, "AGREE", time.Minute)
	assert.Error(t, err)
}
