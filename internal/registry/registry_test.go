package registry

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerationContents(t *testing.T) {
	r := New()

	assert.Equal(t, []string{"mariadb", "mysql", "oracle", "postgresql", "sqlserver"}, r.SourceDatabases())
	assert.Equal(t, []string{"duckdb", "mariadb", "mysql", "postgresql", "sqlite", "sqlserver"}, r.LogDatabases())
	assert.Equal(t, []string{"azure_adls", "gcs", "local", "onelake", "s3", "s3compatible"}, r.StorageBackends())
	assert.Equal(t, []string{"bigquery", "databricks", "ducklake", "fabric", "glue", "motherduck", "snowflake"}, r.PublishTargets())
	assert.Equal(t, []string{"Zstd", "Snappy", "Gzip", "Lz4", "None"}, r.CompressionTypes())
	assert.Equal(t, []string{"external", "internal"}, r.PublishMethods())
	assert.Equal(t, []string{"fail", "continue", "skip"}, r.ErrorActions())
	assert.Equal(t, []string{"DEBUG", "INFO", "WARNING", "ERROR"}, r.LogLevels())
	assert.Equal(t, []string{"running", "failed"}, r.CleanupStatuses())
}

func TestCommandCatalog(t *testing.T) {
	r := New()

	cmds := r.Commands()
	require.Len(t, cmds, 14)

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
		assert.NotEmpty(t, c.Display, "display for %s", c.Name)
		assert.NotEmpty(t, c.Description, "description for %s", c.Name)
	}

	want := []string{
		"logdb_init", "logdb_drop", "logdb_truncate", "logdb_locks",
		"logdb_release_locks", "config_create", "config_delete",
		"config_list", "sync", "sync_export", "sync_publish", "run",
		"status", "cleanup",
	}
	assert.Equal(t, want, names)
}

func TestCommandLookup(t *testing.T) {
	r := New()

	info, ok := r.Command("sync_export")
	require.True(t, ok)
	assert.Equal(t, "sync[export]", info.Display)

	_, ok = r.Command("backup")
	assert.False(t, ok)
}

func TestSupportsPredicates(t *testing.T) {
	r := New()

	assert.True(t, r.SupportsSourceDatabase("postgresql"))
	assert.False(t, r.SupportsSourceDatabase("db2"))
	assert.True(t, r.SupportsLogDatabase("duckdb"))
	assert.False(t, r.SupportsLogDatabase("oracle"))
	assert.True(t, r.SupportsStorageBackend("onelake"))
	assert.False(t, r.SupportsStorageBackend("ftp"))
	assert.True(t, r.SupportsPublishTarget("motherduck"))
	assert.False(t, r.SupportsPublishTarget("redshift"))
	assert.True(t, r.SupportsCompressionType("Zstd"))
	assert.False(t, r.SupportsCompressionType("zstd"))
	assert.True(t, r.SupportsPublishMethod("external"))
	assert.False(t, r.SupportsPublishMethod("both"))
	assert.True(t, r.SupportsErrorAction("skip"))
	assert.False(t, r.SupportsErrorAction("retry"))
	assert.True(t, r.SupportsLogLevel("WARNING"))
	assert.False(t, r.SupportsLogLevel("TRACE"))
	assert.True(t, r.SupportsCleanupStatus("failed"))
	assert.False(t, r.SupportsCleanupStatus("done"))
}

func TestSourceDatabaseLabel(t *testing.T) {
	r := New()

	label, ok := r.SourceDatabaseLabel("sqlserver")
	require.True(t, ok)
	assert.Equal(t, "SQL Server", label)

	_, ok = r.SourceDatabaseLabel("db2")
	assert.False(t, ok)
}

func TestLabeledEntries(t *testing.T) {
	r := New()

	assert.Equal(t, []string{
		"MariaDB (mariadb)", "MySQL (mysql)", "Oracle (oracle)",
		"PostgreSQL (postgresql)", "SQL Server (sqlserver)",
	}, r.SourceDatabaseLabels())

	assert.Contains(t, r.LogDatabaseLabels(), "DuckDB (duckdb)")
	assert.Contains(t, r.StorageBackendLabels(), "Azure ADLS Gen2 (azure_adls)")
	assert.Contains(t, r.PublishTargetLabels(), "MotherDuck (motherduck)")
}

func TestAccessorsReturnCopies(t *testing.T) {
	r := New()

	comp := r.CompressionTypes()
	comp[0] = "Brotli"
	assert.Equal(t, "Zstd", r.CompressionTypes()[0])

	cmds := r.Commands()
	cmds[0].Name = "mutated"
	assert.Equal(t, "logdb_init", r.Commands()[0].Name)
}

func TestSortedAccessorsAreSorted(t *testing.T) {
	r := New()

	for name, values := range map[string][]string{
		"sources": r.SourceDatabases(),
		"logdbs":  r.LogDatabases(),
		"storage": r.StorageBackends(),
		"publish": r.PublishTargets(),
	} {
		assert.True(t, sort.StringsAreSorted(values), name)
	}
}
