package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lakexpress/mcp-server/internal/version"
	"github.com/lakexpress/mcp-server/internal/workflow"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListCapabilitiesHandler(t *testing.T) {
	deps := newTestDeps(nil)

	result, output, err := listCapabilitiesHandler(context.Background(), nil, ListCapabilitiesInput{}, deps)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, output.SourceDatabases, 5)
	assert.Len(t, output.LogDatabases, 6)
	assert.Len(t, output.StorageBackends, 6)
	assert.Len(t, output.PublishTargets, 7)
	assert.Len(t, output.CompressionTypes, 5)
	assert.Len(t, output.Commands, 14)

	// Entries carry the display label alongside the id.
	assert.Contains(t, output.SourceDatabases, "PostgreSQL (postgresql)")
	assert.Contains(t, output.LogDatabases, "SQLite (sqlite)")
	assert.Contains(t, output.StorageBackends, "AWS S3 (s3)")
	assert.Contains(t, output.PublishTargets, "Snowflake (snowflake)")

	// The text content mirrors the structured output.
	var decoded ListCapabilitiesOutput
	text := textOf(t, result)
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	assert.Equal(t, output.SourceDatabases, decoded.SourceDatabases)
}

func TestGetVersionHandlerDetected(t *testing.T) {
	deps := newTestDeps(nil)
	deps.Detector = version.NewDetectorWithProbe(deps.Config.BinaryPath,
		func(ctx context.Context, path string) (string, error) {
			return "LakeXpress 0.2.8", nil
		})

	_, output, err := getVersionHandler(context.Background(), nil, GetVersionInput{}, deps)
	require.NoError(t, err)
	assert.True(t, output.Detected)
	assert.Equal(t, "0.2.8", output.Version)
	assert.Equal(t, "/opt/lx/LakeXpress", output.BinaryPath)
	assert.Contains(t, output.Capabilities.Commands, "sync")
	assert.True(t, output.Capabilities.SupportsIncremental)
}

func TestGetVersionHandlerUndetected(t *testing.T) {
	deps := newTestDeps(nil)
	deps.Detector = version.NewDetectorWithProbe(deps.Config.BinaryPath,
		func(ctx context.Context, path string) (string, error) {
			return "garbage", nil
		})

	_, output, err := getVersionHandler(context.Background(), nil, GetVersionInput{}, deps)
	require.NoError(t, err)
	assert.False(t, output.Detected)
	assert.Empty(t, output.Version)
	// Capabilities still resolve via the latest-known fallback.
	assert.NotEmpty(t, output.Capabilities.SourceDatabases)
}

func TestSuggestWorkflowHandler(t *testing.T) {
	deps := newTestDeps(nil)

	_, output, err := suggestWorkflowHandler(context.Background(), nil, SuggestWorkflowInput{
		SourceType:    "postgresql",
		Destination:   "s3",
		PublishTarget: "snowflake",
	}, deps)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", output.SourceType)
	assert.Equal(t, "snowflake", output.PublishTarget)
	require.NotEmpty(t, output.Steps)
	assert.Equal(t, "logdb init", output.Steps[0].Command)
}

func TestSuggestWorkflowHandlerUnsupported(t *testing.T) {
	deps := newTestDeps(nil)

	_, _, err := suggestWorkflowHandler(context.Background(), nil, SuggestWorkflowInput{
		SourceType:  "db2",
		Destination: "s3",
	}, deps)
	var unsupported *workflow.UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "source_type", unsupported.Field)
}

func TestValidateAuthFileHandler(t *testing.T) {
	deps := newTestDeps(nil)

	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"src": {"user": "x"}, "logdb": {"user": "y"}}`), 0600))

	_, output, err := validateAuthFileHandler(context.Background(), nil, ValidateAuthFileInput{
		FilePath:        path,
		RequiredAuthIDs: []string{"src", "logdb"},
	}, deps)
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, 2, output.EntryCount)
	assert.ElementsMatch(t, []string{"src", "logdb"}, output.AuthIDs)
	assert.Empty(t, output.Issues)
}

func TestValidateAuthFileHandlerMissingFile(t *testing.T) {
	deps := newTestDeps(nil)

	_, output, err := validateAuthFileHandler(context.Background(), nil, ValidateAuthFileInput{
		FilePath: filepath.Join(t.TempDir(), "missing.json"),
	}, deps)
	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.NotEmpty(t, output.Issues)
}
