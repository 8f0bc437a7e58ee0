package out

import "context"

// CommandRunner executes an external command and waits for it to exit.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (*ExecResult, error)
}

// ExecResult holds the result of executing a command.
type ExecResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}
