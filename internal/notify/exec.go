package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// runNotifier executes an external notifier with a bounded timeout so a
// hung binary cannot stall the invocation. Missing binary, timeout, and
// non-zero exit each map to a distinct error.
func runNotifier(ctx context.Context, timeout time.Duration, name string, args ...string) error {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := exec.CommandContext(cctx, name, args...).Run()
	if err == nil {
		return nil
	}
	if cctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %s", name, timeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s not found", name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s returned non-zero exit code: %d", name, exitErr.ExitCode())
	}
	return fmt.Errorf("%s: %w", name, err)
}
