package domain

// DestroyResult is the outcome of a destroy command that ran.
type DestroyResult struct {
	ExitCode int
	Stderr   string
}

// Succeeded reports whether the snapshot was destroyed.
func (r DestroyResult) Succeeded() bool {
	return r.ExitCode == 0
}
