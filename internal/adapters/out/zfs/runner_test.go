package zfs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Run_CapturesOutputAndExitCode(t *testing.T) {
	res, err := NewExecRunner(0).Run(context.Background(), "sh", "-c", "echo out; echo err >&2; exit 3")
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err\n", string(res.Stderr))
}

func TestExecRunner_Run_Success(t *testing.T) {
	res, err := NewExecRunner(0).Run(context.Background(), "sh", "-c", "true")
	require.NoError(t, err)
	assert.Zero(t, res.ExitCode)
}

func TestExecRunner_Run_MissingBinary(t *testing.T) {
	res, err := NewExecRunner(0).Run(context.Background(), "zprune-test-no-such-binary")
	require.Error(t, err)
	assert.Nil(t, res)
}

func TestExecRunner_Run_Timeout(t *testing.T) {
	res, err := NewExecRunner(50*time.Millisecond).Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, res)
}
