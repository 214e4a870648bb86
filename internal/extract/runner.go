package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// retryDelay is the per-attempt backoff unit. Attempt n waits n*retryDelay
// before retrying.
const retryDelay = 500 * time.Millisecond

// runWithRetries invokes run up to attempts times with linear backoff,
// removing dest between attempts so a partial write never survives.
func runWithRetries(ctx context.Context, attempts int, dest string, run func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = run(ctx)
		if lastErr == nil {
			return nil
		}
		if dest != "" {
			os.Remove(dest)
		}
		if ctx.Err() != nil {
			return lastErr
		}
		if attempt < attempts {
			select {
			case <-time.After(time.Duration(attempt) * retryDelay):
			case <-ctx.Done():
				return lastErr
			}
		}
	}
	return lastErr
}
