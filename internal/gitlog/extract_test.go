package gitlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRunner returns a fixed result or error and records the invocation.
type stubRunner struct {
	result Result
	err    error

	dir  string
	name string
	args []string
}

func (s *stubRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	s.dir = dir
	s.name = name
	s.args = args
	return s.result, s.err
}

func TestExtract_BuildsLogInvocation(t *testing.T) {
	runner := &stubRunner{result: Result{Stdout: "log output"}}

	out, err := Extract(context.Background(), runner, "git", "/repos/runc", "2022-01-05 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "log output", out)

	assert.Equal(t, "/repos/runc", runner.dir)
	assert.Equal(t, "git", runner.name)
	assert.Equal(t, []string{
		"log",
		"--after=2022-01-05 00:00:00",
		"--format=* %cd %aN<%ae> %n- %s%d%n",
		"--date=local",
	}, runner.args)
}

func TestExtract_NonZeroExit(t *testing.T) {
	runner := &stubRunner{result: Result{
		ExitCode: 128,
		Stderr:   "fatal: not a git repository\n",
	}}

	_, err := Extract(context.Background(), runner, "git", "/not/a/repo", "2022-01-05 00:00:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git exited 128")
	assert.Contains(t, err.Error(), "fatal: not a git repository")
}

func TestExtract_RunnerError(t *testing.T) {
	wantErr := errors.New("executable not found")
	runner := &stubRunner{err: wantErr}

	_, err := Extract(context.Background(), runner, "git", "/repos/runc", "2022-01-05 00:00:00")
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}
