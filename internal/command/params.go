package command

import (
	"github.com/lakexpress/mcp-server/internal/registry"
)

// Subcommand identifies one of the 14 operations the wrapped binary accepts.
type Subcommand string

const (
	LogdbInit         Subcommand = "logdb_init"
	LogdbDrop         Subcommand = "logdb_drop"
	LogdbTruncate     Subcommand = "logdb_truncate"
	LogdbLocks        Subcommand = "logdb_locks"
	LogdbReleaseLocks Subcommand = "logdb_release_locks"
	ConfigCreate      Subcommand = "config_create"
	ConfigDelete      Subcommand = "config_delete"
	ConfigList        Subcommand = "config_list"
	Sync              Subcommand = "sync"
	SyncExport        Subcommand = "sync_export"
	SyncPublish       Subcommand = "sync_publish"
	Run               Subcommand = "run"
	Status            Subcommand = "status"
	Cleanup           Subcommand = "cleanup"
)

// GlobalOptions are shared by every command that talks to the log database.
type GlobalOptions struct {
	AuthFile    string `json:"auth_file" jsonschema:"required" jsonschema_description:"Path to authentication/credentials JSON file"`
	LogDBAuthID string `json:"log_db_auth_id" jsonschema:"required" jsonschema_description:"Credential ID for the log database connection"`
	LogLevel    string `json:"log_level,omitempty" jsonschema_description:"Logging verbosity level (DEBUG, INFO, WARNING, ERROR)"`
	LogDir      string `json:"log_dir,omitempty" jsonschema_description:"Directory for log files"`
	NoProgress  bool   `json:"no_progress,omitempty" jsonschema_description:"Disable progress bar display"`
	NoBanner    bool   `json:"no_banner,omitempty" jsonschema_description:"Suppress the startup banner"`
}

func (o *GlobalOptions) validate(reg *registry.Registry) error {
	if o.AuthFile == "" {
		return errMissing("auth_file")
	}
	if o.LogDBAuthID == "" {
		return errMissing("log_db_auth_id")
	}
	if o.LogLevel != "" && !reg.SupportsLogLevel(o.LogLevel) {
		return errInvalidValue("log_level", o.LogLevel, reg.LogLevels())
	}
	return nil
}

// CommonOptions are shared by sync/run commands, which resolve credentials
// from the stored configuration instead of requiring them up front.
type CommonOptions struct {
	LogLevel   string `json:"log_level,omitempty" jsonschema_description:"Logging verbosity level (DEBUG, INFO, WARNING, ERROR)"`
	LogDir     string `json:"log_dir,omitempty" jsonschema_description:"Directory for log files"`
	NoProgress bool   `json:"no_progress,omitempty" jsonschema_description:"Disable progress bar display"`
	NoBanner   bool   `json:"no_banner,omitempty" jsonschema_description:"Suppress the startup banner"`
}

func (o *CommonOptions) validate(reg *registry.Registry) error {
	if o.LogLevel != "" && !reg.SupportsLogLevel(o.LogLevel) {
		return errInvalidValue("log_level", o.LogLevel, reg.LogLevels())
	}
	return nil
}

type LogdbInitParams struct {
	GlobalOptions
}

type LogdbDropParams struct {
	GlobalOptions
	Confirm bool `json:"confirm,omitempty" jsonschema_description:"Confirm the drop operation"`
}

type LogdbTruncateParams struct {
	GlobalOptions
	SyncID  string `json:"sync_id,omitempty" jsonschema_description:"Truncate only data for this sync_id"`
	Confirm bool   `json:"confirm,omitempty" jsonschema_description:"Confirm the truncate operation"`
}

type LogdbLocksParams struct {
	GlobalOptions
	SyncID string `json:"sync_id,omitempty" jsonschema_description:"Show locks for this sync_id only"`
}

type LogdbReleaseLocksParams struct {
	GlobalOptions
	MaxAgeHours *int   `json:"max_age_hours,omitempty" jsonschema_description:"Release locks older than this many hours"`
	TableID     string `json:"table_id,omitempty" jsonschema_description:"Release lock for a specific table ID"`
	Confirm     bool   `json:"confirm,omitempty" jsonschema_description:"Confirm the lock release operation"`
}

type ConfigCreateParams struct {
	GlobalOptions

	// Source
	SourceDBAuthID   string `json:"source_db_auth_id" jsonschema:"required" jsonschema_description:"Source database credential ID"`
	SourceDBName     string `json:"source_db_name,omitempty" jsonschema_description:"Source database name"`
	SourceSchemaName string `json:"source_schema_name,omitempty" jsonschema_description:"Comma-separated list of source schemas"`

	// Filtering
	Include string `json:"include,omitempty" jsonschema_description:"Table include patterns (comma-separated, supports wildcards)"`
	Exclude string `json:"exclude,omitempty" jsonschema_description:"Table exclude patterns (comma-separated, supports wildcards)"`
	MinRows *int   `json:"min_rows,omitempty" jsonschema_description:"Minimum row count for table inclusion"`
	MaxRows *int   `json:"max_rows,omitempty" jsonschema_description:"Maximum row count for table inclusion"`

	// Incremental
	IncrementalTable     []string `json:"incremental_table,omitempty" jsonschema_description:"Incremental table config: schema.table:column:type[:i|:e][@start][!strategy]"`
	IncrementalSafetyLag *int     `json:"incremental_safety_lag,omitempty" jsonschema_description:"Safety lag in seconds for incremental exports"`

	// Storage
	OutputDir       string `json:"output_dir,omitempty" jsonschema_description:"Local output directory for exports"`
	TargetStorageID string `json:"target_storage_id,omitempty" jsonschema_description:"Target storage credential ID (for cloud storage)"`
	SubPath         string `json:"sub_path,omitempty" jsonschema_description:"Sub-path within storage location"`

	// FastBCP
	FastBCPDirPath      string `json:"fastbcp_dir_path,omitempty" jsonschema_description:"Path to FastBCP binary directory"`
	FastBCPP            *int   `json:"fastbcp_p,omitempty" jsonschema_description:"FastBCP parallel degree"`
	NJobs               *int   `json:"n_jobs,omitempty" jsonschema_description:"Number of concurrent table exports"`
	CompressionType     string `json:"compression_type,omitempty" jsonschema_description:"Parquet compression type (Zstd, Snappy, Gzip, Lz4, None)"`
	LargeTableThreshold *int   `json:"large_table_threshold,omitempty" jsonschema_description:"Row threshold for large table handling"`
	FastBCPTableConfig  string `json:"fastbcp_table_config,omitempty" jsonschema_description:"Per-table FastBCP config: 'table1:method:key:degree;table2:method:key:degree'"`

	// Publishing
	PublishTarget        string `json:"publish_target,omitempty" jsonschema_description:"Publish target credential ID"`
	PublishMethod        string `json:"publish_method,omitempty" jsonschema_description:"Publish method (external tables or internal/loaded)"`
	PublishDatabaseName  string `json:"publish_database_name,omitempty" jsonschema_description:"Target database name for publishing"`
	PublishSchemaPattern string `json:"publish_schema_pattern,omitempty" jsonschema_description:"Schema naming pattern for publishing"`
	PublishTablePattern  string `json:"publish_table_pattern,omitempty" jsonschema_description:"Table naming pattern for publishing"`

	// Features
	NoViews          bool   `json:"no_views,omitempty" jsonschema_description:"Disable view creation when publishing external tables"`
	PKConstraints    bool   `json:"pk_constraints,omitempty" jsonschema_description:"Enable primary key constraints when publishing"`
	GenerateMetadata bool   `json:"generate_metadata,omitempty" jsonschema_description:"Generate CDM metadata files"`
	ManifestName     string `json:"manifest_name,omitempty" jsonschema_description:"Manifest file name"`

	// Other
	SyncID      string `json:"sync_id,omitempty" jsonschema_description:"Custom sync ID (1-64 chars, alphanumeric/underscore/hyphen)"`
	ErrorAction string `json:"error_action,omitempty" jsonschema_description:"Action on error: fail, continue, or skip"`
	EnvName     string `json:"env_name,omitempty" jsonschema_description:"Environment name for configuration isolation"`
}

func (p *ConfigCreateParams) validate(reg *registry.Registry) error {
	if err := p.GlobalOptions.validate(reg); err != nil {
		return err
	}
	if p.SourceDBAuthID == "" {
		return errMissing("source_db_auth_id")
	}
	if p.CompressionType != "" && !reg.SupportsCompressionType(p.CompressionType) {
		return errInvalidValue("compression_type", p.CompressionType, reg.CompressionTypes())
	}
	if p.PublishMethod != "" && !reg.SupportsPublishMethod(p.PublishMethod) {
		return errInvalidValue("publish_method", p.PublishMethod, reg.PublishMethods())
	}
	if p.ErrorAction != "" && !reg.SupportsErrorAction(p.ErrorAction) {
		return errInvalidValue("error_action", p.ErrorAction, reg.ErrorActions())
	}
	if p.OutputDir != "" && p.TargetStorageID != "" {
		return &ValidationError{
			Kind:   KindMutuallyExclusive,
			Param:  "output_dir",
			Detail: "output_dir and target_storage_id are mutually exclusive: use output_dir for local storage or target_storage_id for cloud storage",
		}
	}
	if p.OutputDir == "" && p.TargetStorageID == "" {
		return &ValidationError{
			Kind:   KindMissingParameter,
			Param:  "output_dir",
			Detail: "at least one of output_dir or target_storage_id must be provided",
		}
	}
	if p.PublishMethod != "" && p.PublishTarget == "" {
		return &ValidationError{
			Kind:   KindDependentParameter,
			Param:  "publish_method",
			Detail: "publish_method requires publish_target to be set",
		}
	}
	return nil
}

type ConfigDeleteParams struct {
	GlobalOptions
	SyncID  string `json:"sync_id" jsonschema:"required" jsonschema_description:"The sync_id to delete"`
	Confirm bool   `json:"confirm,omitempty" jsonschema_description:"Confirm the delete operation"`
}

func (p *ConfigDeleteParams) validate(reg *registry.Registry) error {
	if err := p.GlobalOptions.validate(reg); err != nil {
		return err
	}
	if p.SyncID == "" {
		return errMissing("sync_id")
	}
	return nil
}

type ConfigListParams struct {
	GlobalOptions
	EnvName string `json:"env_name,omitempty" jsonschema_description:"Filter by environment name"`
}

type SyncParams struct {
	SyncID         string `json:"sync_id,omitempty" jsonschema_description:"The sync_id to execute"`
	Resume         bool   `json:"resume,omitempty" jsonschema_description:"Resume an incomplete run"`
	RunID          string `json:"run_id,omitempty" jsonschema_description:"Specific run_id to resume or continue"`
	AuthFile       string `json:"auth_file,omitempty" jsonschema_description:"Override auth file"`
	FastBCPDirPath string `json:"fastbcp_dir_path,omitempty" jsonschema_description:"Override FastBCP location"`
	CommonOptions
}

type SyncExportParams struct {
	SyncID         string `json:"sync_id,omitempty" jsonschema_description:"The sync_id to execute"`
	AuthFile       string `json:"auth_file,omitempty" jsonschema_description:"Override auth file"`
	FastBCPDirPath string `json:"fastbcp_dir_path,omitempty" jsonschema_description:"Override FastBCP location"`
	CommonOptions
}

type SyncPublishParams struct {
	SyncID   string `json:"sync_id,omitempty" jsonschema_description:"The sync_id to publish"`
	RunID    string `json:"run_id,omitempty" jsonschema_description:"Specific run_id to publish"`
	AuthFile string `json:"auth_file,omitempty" jsonschema_description:"Override auth file"`
	CommonOptions
}

type RunParams struct {
	Config      string `json:"config" jsonschema:"required" jsonschema_description:"Path to YAML configuration file"`
	AuthFile    string `json:"auth_file,omitempty" jsonschema_description:"Path to authentication JSON file (overrides YAML)"`
	LogDBAuthID string `json:"log_db_auth_id,omitempty" jsonschema_description:"Log database credential ID (overrides YAML)"`
	CommonOptions
}

func (p *RunParams) validate(reg *registry.Registry) error {
	if p.Config == "" {
		return errMissing("config")
	}
	return p.CommonOptions.validate(reg)
}

type StatusParams struct {
	GlobalOptions
	SyncID  string `json:"sync_id,omitempty" jsonschema_description:"Show runs for this sync configuration"`
	RunID   string `json:"run_id,omitempty" jsonschema_description:"Show details for a specific run"`
	Verbose bool   `json:"verbose,omitempty" jsonschema_description:"Show detailed list of all runs"`
}

type CleanupParams struct {
	GlobalOptions
	SyncID    string `json:"sync_id" jsonschema:"required" jsonschema_description:"The sync_id to clean up"`
	OlderThan string `json:"older_than,omitempty" jsonschema_description:"Only delete runs older than this duration (e.g., 7d, 24h, 30m)"`
	Status    string `json:"status,omitempty" jsonschema_description:"Only delete runs with this status (running, failed)"`
	DryRun    bool   `json:"dry_run,omitempty" jsonschema_description:"Preview what would be deleted without actually deleting"`
}

func (p *CleanupParams) validate(reg *registry.Registry) error {
	if err := p.GlobalOptions.validate(reg); err != nil {
		return err
	}
	if p.SyncID == "" {
		return errMissing("sync_id")
	}
	if p.Status != "" && !reg.SupportsCleanupStatus(p.Status) {
		return errInvalidValue("status", p.Status, reg.CleanupStatuses())
	}
	return nil
}

// Request is the tagged-variant input for preview_command: Command selects
// the subcommand and exactly one matching params block must be set.
type Request struct {
	Command Subcommand `json:"command" jsonschema:"required" jsonschema_description:"The LakeXpress command to build (logdb_init, logdb_drop, logdb_truncate, logdb_locks, logdb_release_locks, config_create, config_delete, config_list, sync, sync_export, sync_publish, run, status, cleanup)"`

	LogdbInit         *LogdbInitParams         `json:"logdb_init,omitempty" jsonschema_description:"Parameters for logdb init"`
	LogdbDrop         *LogdbDropParams         `json:"logdb_drop,omitempty" jsonschema_description:"Parameters for logdb drop"`
	LogdbTruncate     *LogdbTruncateParams     `json:"logdb_truncate,omitempty" jsonschema_description:"Parameters for logdb truncate"`
	LogdbLocks        *LogdbLocksParams        `json:"logdb_locks,omitempty" jsonschema_description:"Parameters for logdb locks"`
	LogdbReleaseLocks *LogdbReleaseLocksParams `json:"logdb_release_locks,omitempty" jsonschema_description:"Parameters for logdb release-locks"`
	ConfigCreate      *ConfigCreateParams      `json:"config_create,omitempty" jsonschema_description:"Parameters for config create"`
	ConfigDelete      *ConfigDeleteParams      `json:"config_delete,omitempty" jsonschema_description:"Parameters for config delete"`
	ConfigList        *ConfigListParams        `json:"config_list,omitempty" jsonschema_description:"Parameters for config list"`
	Sync              *SyncParams              `json:"sync,omitempty" jsonschema_description:"Parameters for sync"`
	SyncExport        *SyncExportParams        `json:"sync_export,omitempty" jsonschema_description:"Parameters for sync[export]"`
	SyncPublish       *SyncPublishParams       `json:"sync_publish,omitempty" jsonschema_description:"Parameters for sync[publish]"`
	Run               *RunParams               `json:"run,omitempty" jsonschema_description:"Parameters for run"`
	Status            *StatusParams            `json:"status,omitempty" jsonschema_description:"Parameters for status"`
	Cleanup           *CleanupParams           `json:"cleanup,omitempty" jsonschema_description:"Parameters for cleanup"`
}
