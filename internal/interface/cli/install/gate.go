package install

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// confirm blocks for the literal confirmation token. Anything else, EOF,
// silence past the deadline, or run cancellation aborts before any mutation.
func confirm(ctx context.Context, cmd *cobra.Command, token string, timeout time.Duration) error {
	fmt.Fprintf(cmd.OutOrStdout(), "This will install a large number of packages and modify the system.\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Type %s to continue: ", token)

	type readResult struct {
		line string
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		line := strings.TrimSpace(res.line)
		if line == token {
			return nil
		}
		if res.err != nil && line == "" {
			return fmt.Errorf("confirmation aborted: %v", res.err)
		}
		return fmt.Errorf("confirmation declined (expected %s)", token)
	case <-timer.C:
		return fmt.Errorf("confirmation timed out after %s", timeout)
	case <-ctx.Done():
		return fmt.Errorf("confirmation aborted: %v", ctx.Err())
	}
}
