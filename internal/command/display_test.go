package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayPairsFlagsWithValues(t *testing.T) {
	argv := []string{
		"/usr/local/bin/LakeXpress", "logdb", "init",
		"-a", "auth.json", "--log_db_auth_id", "export_db", "--no_banner",
	}

	got := Display(argv)
	lines := strings.Split(got, " \\\n  ")

	assert.Equal(t, []string{
		"/usr/local/bin/LakeXpress",
		"logdb",
		"init",
		"-a auth.json",
		"--log_db_auth_id export_db",
		"--no_banner",
	}, lines)
}

func TestDisplayQuotesValuesWithSpaces(t *testing.T) {
	argv := []string{"lx", "config", "create", "--output_dir", "/data/my exports"}
	got := Display(argv)
	assert.Contains(t, got, `--output_dir "/data/my exports"`)
}

func TestDisplayEmpty(t *testing.T) {
	assert.Equal(t, "", Display(nil))
}

func TestExplainLogdbDrop(t *testing.T) {
	req := Request{Command: LogdbDrop, LogdbDrop: &LogdbDropParams{
		GlobalOptions: GlobalOptions{AuthFile: "auth.json", LogDBAuthID: "export_db"},
		Confirm:       true,
	}}

	got := Explain(&req)
	assert.Contains(t, got, "1. Drop the log database schema")
	assert.Contains(t, got, "WARNING")
	assert.Contains(t, got, "Confirmation flag is set")
}

func TestExplainConfigCreate(t *testing.T) {
	njobs := 4
	req := Request{Command: ConfigCreate, ConfigCreate: &ConfigCreateParams{
		GlobalOptions:    GlobalOptions{AuthFile: "auth.json", LogDBAuthID: "export_db"},
		SourceDBAuthID:   "prod_db",
		SourceSchemaName: "sales",
		OutputDir:        "./exports",
		PublishTarget:    "snowflake_target",
		NJobs:            &njobs,
		CompressionType:  "Zstd",
	}}

	got := Explain(&req)
	require.NotEmpty(t, got)
	assert.Contains(t, got, "Create a new sync configuration")
	assert.Contains(t, got, "Source database: prod_db")
	assert.Contains(t, got, "Output to local directory: ./exports")
	assert.Contains(t, got, "Publish to: snowflake_target")
	assert.Contains(t, got, "Concurrent table exports: 4")
	assert.Contains(t, got, "Compression: Zstd")
}

func TestExplainCleanupDryRun(t *testing.T) {
	req := Request{Command: Cleanup, Cleanup: &CleanupParams{
		GlobalOptions: GlobalOptions{AuthFile: "auth.json", LogDBAuthID: "export_db"},
		SyncID:        "s1",
		OlderThan:     "7d",
		DryRun:        true,
	}}

	got := Explain(&req)
	assert.Contains(t, got, "Clean up orphaned runs for sync_id: s1")
	assert.Contains(t, got, "Only runs older than: 7d")
	assert.Contains(t, got, "DRY RUN")
}
