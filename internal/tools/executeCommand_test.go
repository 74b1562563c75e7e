package tools

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lakexpress/mcp-server/internal/client"
	"github.com/lakexpress/mcp-server/internal/command"
	"github.com/lakexpress/mcp-server/internal/config"
	"github.com/lakexpress/mcp-server/internal/registry"
	"github.com/lakexpress/mcp-server/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records every invocation and returns a canned result.
type fakeRunner struct {
	mu      sync.Mutex
	calls   int
	argv    []string
	timeout time.Duration
	result  *client.RunResult
	err     error
}

func (f *fakeRunner) Run(ctx context.Context, argv []string, timeout time.Duration) (*client.RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.argv = append([]string(nil), argv...)
	f.timeout = timeout
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestDeps(runner Runner) *Deps {
	reg := registry.New()
	return &Deps{
		Config: &config.Config{
			BinaryPath: "/opt/lx/LakeXpress",
			Timeout:    90 * time.Second,
			PreviewTTL: 15 * time.Minute,
		},
		Registry: reg,
		Builder:  command.NewBuilder("/opt/lx/LakeXpress", reg),
		Previews: state.NewPreviewStore(15 * time.Minute),
		Runner:   runner,
	}
}

func stagePreview(t *testing.T, deps *Deps) state.Preview {
	t.Helper()
	argv := []string{"/opt/lx/LakeXpress", "config", "list", "-a", "auth.json", "--log_db_auth_id", "logdb"}
	return deps.Previews.Put("config_list", argv, command.Display(argv))
}

func TestExecuteRunsConfirmedPreview(t *testing.T) {
	runner := &fakeRunner{result: &client.RunResult{
		ExitCode: 0,
		Stdout:   "2 configurations\n",
		Duration: 1200 * time.Millisecond,
		LogPath:  "/var/log/lakexpress/lakexpress_20260829_120000.log",
	}}
	deps := newTestDeps(runner)
	preview := stagePreview(t, deps)

	result, output, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, runner.callCount())
	assert.Equal(t, preview.Argv, runner.argv)
	assert.Equal(t, 90*time.Second, runner.timeout)

	assert.True(t, output.Success)
	assert.Equal(t, 0, output.ExitCode)
	assert.Equal(t, "2 configurations\n", output.Stdout)
	assert.InDelta(t, 1.2, output.DurationSeconds, 0.001)
	assert.Equal(t, "/var/log/lakexpress/lakexpress_20260829_120000.log", output.LogPath)
}

func TestExecuteWithoutConfirmationNeverSpawns(t *testing.T) {
	runner := &fakeRunner{result: &client.RunResult{}}
	deps := newTestDeps(runner)
	preview := stagePreview(t, deps)

	_, _, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: false}, deps)
	require.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, 0, runner.callCount())

	// The refused call must not consume the preview; a confirmed retry
	// still succeeds.
	_, output, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.callCount())
	assert.True(t, output.Success)
}

func TestExecuteTokenConsumedExactlyOnce(t *testing.T) {
	runner := &fakeRunner{result: &client.RunResult{ExitCode: 0}}
	deps := newTestDeps(runner)
	preview := stagePreview(t, deps)

	_, _, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	require.NoError(t, err)

	_, _, err = executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	require.ErrorIs(t, err, state.ErrAlreadyExecuted)
	assert.True(t, IsPreviewError(err))
	assert.Equal(t, 1, runner.callCount())
}

func TestExecuteUnknownToken(t *testing.T) {
	runner := &fakeRunner{result: &client.RunResult{}}
	deps := newTestDeps(runner)

	_, _, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: "no-such-token", Confirmation: true}, deps)
	require.ErrorIs(t, err, state.ErrUnknownToken)
	assert.True(t, IsPreviewError(err))
	assert.Equal(t, 0, runner.callCount())
}

func TestExecuteBinaryUnavailable(t *testing.T) {
	deps := newTestDeps(nil)
	preview := stagePreview(t, deps)

	_, _, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	require.ErrorIs(t, err, ErrBinaryUnavailable)

	// The token survives; a retry after fixing LAKEXPRESS_PATH would work.
	_, ok := deps.Previews.Peek(preview.Token)
	assert.True(t, ok)
}

func TestExecuteNonZeroExitIsReportedNotFailed(t *testing.T) {
	runner := &fakeRunner{result: &client.RunResult{
		ExitCode: 2,
		Stderr:   "lock held by another run",
		Duration: 300 * time.Millisecond,
	}}
	deps := newTestDeps(runner)
	preview := stagePreview(t, deps)

	_, output, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	require.NoError(t, err)
	assert.False(t, output.Success)
	assert.Equal(t, 2, output.ExitCode)
	assert.Contains(t, output.Stderr, "lock held")
}

func TestExecuteTimeoutSurfacesError(t *testing.T) {
	runner := &fakeRunner{err: &client.TimeoutError{Timeout: 90 * time.Second}}
	deps := newTestDeps(runner)
	preview := stagePreview(t, deps)

	_, _, err := executeCommandHandler(context.Background(), nil,
		ExecuteCommandInput{PreviewToken: preview.Token, Confirmation: true}, deps)
	var timeout *client.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.False(t, IsPreviewError(err))
}
