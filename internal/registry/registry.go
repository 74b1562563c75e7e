package registry

import (
	"fmt"
	"sort"
)

// Registry holds the static capability tables for the wrapped LakeXpress
// binary: supported enumerations plus the catalog of the 14 subcommands.
// It is built once at startup and never mutated afterwards.
type Registry struct {
	sourceDatabases  map[string]string
	logDatabases     map[string]string
	storageBackends  map[string]string
	publishTargets   map[string]string
	compressionTypes []string
	publishMethods   []string
	errorActions     []string
	logLevels        []string
	cleanupStatuses  []string
	commands         []CommandInfo
}

// CommandInfo describes one subcommand in the catalog.
type CommandInfo struct {
	Name        string `json:"name"`
	Display     string `json:"display"`
	Description string `json:"description"`
}

// New builds the capability registry for the currently supported
// LakeXpress command-line surface.
func New() *Registry {
	return &Registry{
		sourceDatabases: map[string]string{
			"sqlserver":  "SQL Server",
			"postgresql": "PostgreSQL",
			"oracle":     "Oracle",
			"mysql":      "MySQL",
			"mariadb":    "MariaDB",
		},
		logDatabases: map[string]string{
			"sqlserver":  "SQL Server",
			"postgresql": "PostgreSQL",
			"mysql":      "MySQL",
			"mariadb":    "MariaDB",
			"sqlite":     "SQLite",
			"duckdb":     "DuckDB",
		},
		storageBackends: map[string]string{
			"local":        "Local filesystem",
			"s3":           "AWS S3",
			"s3compatible": "S3-compatible",
			"gcs":          "Google Cloud Storage",
			"azure_adls":   "Azure ADLS Gen2",
			"onelake":      "OneLake",
		},
		publishTargets: map[string]string{
			"snowflake":  "Snowflake",
			"databricks": "Databricks",
			"fabric":     "Microsoft Fabric",
			"bigquery":   "BigQuery",
			"motherduck": "MotherDuck",
			"glue":       "AWS Glue",
			"ducklake":   "DuckLake",
		},
		compressionTypes: []string{"Zstd", "Snappy", "Gzip", "Lz4", "None"},
		publishMethods:   []string{"external", "internal"},
		errorActions:     []string{"fail", "continue", "skip"},
		logLevels:        []string{"DEBUG", "INFO", "WARNING", "ERROR"},
		cleanupStatuses:  []string{"running", "failed"},
		commands: []CommandInfo{
			{Name: "logdb_init", Display: "logdb init", Description: "Create the log database schema"},
			{Name: "logdb_drop", Display: "logdb drop", Description: "Drop the log database schema"},
			{Name: "logdb_truncate", Display: "logdb truncate", Description: "Clear all data, keep schema"},
			{Name: "logdb_locks", Display: "logdb locks", Description: "Show currently locked tables"},
			{Name: "logdb_release_locks", Display: "logdb release-locks", Description: "Release stale or stuck locks"},
			{Name: "config_create", Display: "config create", Description: "Create a new sync configuration"},
			{Name: "config_delete", Display: "config delete", Description: "Delete an existing sync configuration"},
			{Name: "config_list", Display: "config list", Description: "List all sync configurations"},
			{Name: "sync", Display: "sync", Description: "Execute sync (export + publish)"},
			{Name: "sync_export", Display: "sync[export]", Description: "Execute export only"},
			{Name: "sync_publish", Display: "sync[publish]", Description: "Execute publish only"},
			{Name: "run", Display: "run", Description: "Run export from YAML config file"},
			{Name: "status", Display: "status", Description: "Query sync/run status"},
			{Name: "cleanup", Display: "cleanup", Description: "Remove orphaned or stale runs"},
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SourceDatabases returns the supported source database identifiers in
// sorted order.
func (r *Registry) SourceDatabases() []string { return sortedKeys(r.sourceDatabases) }

// LogDatabases returns the supported log database identifiers in sorted order.
func (r *Registry) LogDatabases() []string { return sortedKeys(r.logDatabases) }

// StorageBackends returns the supported storage backend identifiers in
// sorted order.
func (r *Registry) StorageBackends() []string { return sortedKeys(r.storageBackends) }

// PublishTargets returns the supported publish target identifiers in
// sorted order.
func (r *Registry) PublishTargets() []string { return sortedKeys(r.publishTargets) }

// CompressionTypes returns the supported Parquet compression types.
func (r *Registry) CompressionTypes() []string {
	return append([]string(nil), r.compressionTypes...)
}

// PublishMethods returns the supported publish methods.
func (r *Registry) PublishMethods() []string {
	return append([]string(nil), r.publishMethods...)
}

// ErrorActions returns the supported on-error actions.
func (r *Registry) ErrorActions() []string {
	return append([]string(nil), r.errorActions...)
}

// LogLevels returns the log verbosity levels the binary accepts.
func (r *Registry) LogLevels() []string {
	return append([]string(nil), r.logLevels...)
}

// CleanupStatuses returns the status filters accepted by cleanup.
func (r *Registry) CleanupStatuses() []string {
	return append([]string(nil), r.cleanupStatuses...)
}

// Commands returns the subcommand catalog in canonical order.
func (r *Registry) Commands() []CommandInfo {
	return append([]CommandInfo(nil), r.commands...)
}

// SourceDatabaseLabel returns the display label for a source database
// identifier, e.g. "PostgreSQL" for "postgresql".
func (r *Registry) SourceDatabaseLabel(id string) (string, bool) {
	label, ok := r.sourceDatabases[id]
	return label, ok
}

func labeledValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, id := range sortedKeys(m) {
		out = append(out, fmt.Sprintf("%s (%s)", m[id], id))
	}
	return out
}

// SourceDatabaseLabels returns "Label (id)" entries for the supported
// source databases, in id order.
func (r *Registry) SourceDatabaseLabels() []string { return labeledValues(r.sourceDatabases) }

// LogDatabaseLabels returns "Label (id)" entries for the supported log
// databases, in id order.
func (r *Registry) LogDatabaseLabels() []string { return labeledValues(r.logDatabases) }

// StorageBackendLabels returns "Label (id)" entries for the supported
// storage backends, in id order.
func (r *Registry) StorageBackendLabels() []string { return labeledValues(r.storageBackends) }

// PublishTargetLabels returns "Label (id)" entries for the supported
// publish targets, in id order.
func (r *Registry) PublishTargetLabels() []string { return labeledValues(r.publishTargets) }

func (r *Registry) SupportsSourceDatabase(id string) bool {
	_, ok := r.sourceDatabases[id]
	return ok
}

func (r *Registry) SupportsLogDatabase(id string) bool {
	_, ok := r.logDatabases[id]
	return ok
}

func (r *Registry) SupportsStorageBackend(id string) bool {
	_, ok := r.storageBackends[id]
	return ok
}

func (r *Registry) SupportsPublishTarget(id string) bool {
	_, ok := r.publishTargets[id]
	return ok
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func (r *Registry) SupportsCompressionType(v string) bool {
	return containsString(r.compressionTypes, v)
}

func (r *Registry) SupportsPublishMethod(v string) bool {
	return containsString(r.publishMethods, v)
}

func (r *Registry) SupportsErrorAction(v string) bool {
	return containsString(r.errorActions, v)
}

func (r *Registry) SupportsLogLevel(v string) bool {
	return containsString(r.logLevels, v)
}

func (r *Registry) SupportsCleanupStatus(v string) bool {
	return containsString(r.cleanupStatuses, v)
}

// Command looks up a catalog entry by its canonical name.
func (r *Registry) Command(name string) (CommandInfo, bool) {
	for _, cmd := range r.commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return CommandInfo{}, false
}
