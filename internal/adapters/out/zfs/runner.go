package zfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/bnema/zprune/internal/boundaries/out"
)

// ExecRunner runs commands on the local host.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates a runner. A zero timeout lets commands run until they exit.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run executes name with args. A non-zero exit is reported in the result,
// not as an error.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*out.ExecResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // binary comes from operator config, args are dataset names
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s %s: %w", name, firstArg(args), ctxErr)
	}

	result := &out.ExecResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("%s %s: %w", name, firstArg(args), err)
	}

	return result, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
