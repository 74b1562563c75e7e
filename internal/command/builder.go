package command

import (
	"strconv"

	"github.com/lakexpress/mcp-server/internal/registry"
)

// Builder validates command requests against the capability registry and
// assembles argument vectors for the LakeXpress binary. It holds no mutable
// state; Build is a pure function over the registry.
type Builder struct {
	binaryPath string
	reg        *registry.Registry
}

func NewBuilder(binaryPath string, reg *registry.Registry) *Builder {
	return &Builder{binaryPath: binaryPath, reg: reg}
}

func (b *Builder) BinaryPath() string { return b.binaryPath }

// Build validates req and returns the full argument vector, binary path
// first. Flag order is fixed so identical requests always produce identical
// vectors.
func (b *Builder) Build(req *Request) ([]string, error) {
	switch req.Command {
	case LogdbInit:
		if req.LogdbInit == nil {
			return nil, errMissing("logdb_init")
		}
		if err := req.LogdbInit.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildLogdbInit(req.LogdbInit), nil
	case LogdbDrop:
		if req.LogdbDrop == nil {
			return nil, errMissing("logdb_drop")
		}
		if err := req.LogdbDrop.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildLogdbDrop(req.LogdbDrop), nil
	case LogdbTruncate:
		if req.LogdbTruncate == nil {
			return nil, errMissing("logdb_truncate")
		}
		if err := req.LogdbTruncate.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildLogdbTruncate(req.LogdbTruncate), nil
	case LogdbLocks:
		if req.LogdbLocks == nil {
			return nil, errMissing("logdb_locks")
		}
		if err := req.LogdbLocks.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildLogdbLocks(req.LogdbLocks), nil
	case LogdbReleaseLocks:
		if req.LogdbReleaseLocks == nil {
			return nil, errMissing("logdb_release_locks")
		}
		if err := req.LogdbReleaseLocks.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildLogdbReleaseLocks(req.LogdbReleaseLocks), nil
	case ConfigCreate:
		if req.ConfigCreate == nil {
			return nil, errMissing("config_create")
		}
		if err := req.ConfigCreate.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildConfigCreate(req.ConfigCreate), nil
	case ConfigDelete:
		if req.ConfigDelete == nil {
			return nil, errMissing("config_delete")
		}
		if err := req.ConfigDelete.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildConfigDelete(req.ConfigDelete), nil
	case ConfigList:
		if req.ConfigList == nil {
			return nil, errMissing("config_list")
		}
		if err := req.ConfigList.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildConfigList(req.ConfigList), nil
	case Sync:
		if req.Sync == nil {
			return nil, errMissing("sync")
		}
		if err := req.Sync.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildSync(req.Sync), nil
	case SyncExport:
		if req.SyncExport == nil {
			return nil, errMissing("sync_export")
		}
		if err := req.SyncExport.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildSyncExport(req.SyncExport), nil
	case SyncPublish:
		if req.SyncPublish == nil {
			return nil, errMissing("sync_publish")
		}
		if err := req.SyncPublish.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildSyncPublish(req.SyncPublish), nil
	case Run:
		if req.Run == nil {
			return nil, errMissing("run")
		}
		if err := req.Run.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildRun(req.Run), nil
	case Status:
		if req.Status == nil {
			return nil, errMissing("status")
		}
		if err := req.Status.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildStatus(req.Status), nil
	case Cleanup:
		if req.Cleanup == nil {
			return nil, errMissing("cleanup")
		}
		if err := req.Cleanup.validate(b.reg); err != nil {
			return nil, err
		}
		return b.buildCleanup(req.Cleanup), nil
	}
	return nil, errUnknownSubcommand(string(req.Command))
}

func appendGlobal(cmd []string, o GlobalOptions) []string {
	cmd = append(cmd, "-a", o.AuthFile)
	cmd = append(cmd, "--log_db_auth_id", o.LogDBAuthID)
	if o.LogLevel != "" {
		cmd = append(cmd, "--log_level", o.LogLevel)
	}
	if o.LogDir != "" {
		cmd = append(cmd, "--log_dir", o.LogDir)
	}
	if o.NoProgress {
		cmd = append(cmd, "--no_progress")
	}
	if o.NoBanner {
		cmd = append(cmd, "--no_banner")
	}
	return cmd
}

func appendCommon(cmd []string, o CommonOptions) []string {
	if o.LogLevel != "" {
		cmd = append(cmd, "--log_level", o.LogLevel)
	}
	if o.LogDir != "" {
		cmd = append(cmd, "--log_dir", o.LogDir)
	}
	if o.NoProgress {
		cmd = append(cmd, "--no_progress")
	}
	if o.NoBanner {
		cmd = append(cmd, "--no_banner")
	}
	return cmd
}

func (b *Builder) buildLogdbInit(p *LogdbInitParams) []string {
	cmd := []string{b.binaryPath, "logdb", "init"}
	return appendGlobal(cmd, p.GlobalOptions)
}

func (b *Builder) buildLogdbDrop(p *LogdbDropParams) []string {
	cmd := []string{b.binaryPath, "logdb", "drop"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildLogdbTruncate(p *LogdbTruncateParams) []string {
	cmd := []string{b.binaryPath, "logdb", "truncate"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildLogdbLocks(p *LogdbLocksParams) []string {
	cmd := []string{b.binaryPath, "logdb", "locks"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	return cmd
}

func (b *Builder) buildLogdbReleaseLocks(p *LogdbReleaseLocksParams) []string {
	cmd := []string{b.binaryPath, "logdb", "release-locks"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	if p.MaxAgeHours != nil {
		cmd = append(cmd, "--max_age_hours", strconv.Itoa(*p.MaxAgeHours))
	}
	if p.TableID != "" {
		cmd = append(cmd, "--table_id", p.TableID)
	}
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildConfigCreate(p *ConfigCreateParams) []string {
	cmd := []string{b.binaryPath, "config", "create"}
	cmd = appendGlobal(cmd, p.GlobalOptions)

	// Source
	cmd = append(cmd, "--source_db_auth_id", p.SourceDBAuthID)
	if p.SourceDBName != "" {
		cmd = append(cmd, "--source_db_name", p.SourceDBName)
	}
	if p.SourceSchemaName != "" {
		cmd = append(cmd, "--source_schema_name", p.SourceSchemaName)
	}

	// Filtering
	if p.Include != "" {
		cmd = append(cmd, "-i", p.Include)
	}
	if p.Exclude != "" {
		cmd = append(cmd, "-e", p.Exclude)
	}
	if p.MinRows != nil {
		cmd = append(cmd, "--min_rows", strconv.Itoa(*p.MinRows))
	}
	if p.MaxRows != nil {
		cmd = append(cmd, "--max_rows", strconv.Itoa(*p.MaxRows))
	}

	// Incremental
	for _, inc := range p.IncrementalTable {
		cmd = append(cmd, "--incremental_table", inc)
	}
	if p.IncrementalSafetyLag != nil {
		cmd = append(cmd, "--incremental_safety_lag", strconv.Itoa(*p.IncrementalSafetyLag))
	}

	// Storage
	if p.OutputDir != "" {
		cmd = append(cmd, "--output_dir", p.OutputDir)
	}
	if p.TargetStorageID != "" {
		cmd = append(cmd, "--target_storage_id", p.TargetStorageID)
	}
	if p.SubPath != "" {
		cmd = append(cmd, "--sub_path", p.SubPath)
	}

	// FastBCP
	if p.FastBCPDirPath != "" {
		cmd = append(cmd, "--fastbcp_dir_path", p.FastBCPDirPath)
	}
	if p.FastBCPP != nil {
		cmd = append(cmd, "-p", strconv.Itoa(*p.FastBCPP))
	}
	if p.NJobs != nil {
		cmd = append(cmd, "--n_jobs", strconv.Itoa(*p.NJobs))
	}
	if p.CompressionType != "" {
		cmd = append(cmd, "--compression_type", p.CompressionType)
	}
	if p.LargeTableThreshold != nil {
		cmd = append(cmd, "--large_table_threshold", strconv.Itoa(*p.LargeTableThreshold))
	}
	if p.FastBCPTableConfig != "" {
		cmd = append(cmd, "--fastbcp_table_config", p.FastBCPTableConfig)
	}

	// Publishing
	if p.PublishTarget != "" {
		cmd = append(cmd, "--publish_target", p.PublishTarget)
	}
	if p.PublishMethod != "" {
		cmd = append(cmd, "--publish_method", p.PublishMethod)
	}
	if p.PublishDatabaseName != "" {
		cmd = append(cmd, "--publish_database_name", p.PublishDatabaseName)
	}
	if p.PublishSchemaPattern != "" {
		cmd = append(cmd, "--publish_schema_pattern", p.PublishSchemaPattern)
	}
	if p.PublishTablePattern != "" {
		cmd = append(cmd, "--publish_table_pattern", p.PublishTablePattern)
	}

	// Features
	if p.NoViews {
		cmd = append(cmd, "--no_views")
	}
	if p.PKConstraints {
		cmd = append(cmd, "--pk_constraints")
	}
	if p.GenerateMetadata {
		cmd = append(cmd, "--generate_metadata")
	}
	if p.ManifestName != "" {
		cmd = append(cmd, "--manifest_name", p.ManifestName)
	}

	// Other
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.ErrorAction != "" {
		cmd = append(cmd, "--error_action", p.ErrorAction)
	}
	if p.EnvName != "" {
		cmd = append(cmd, "--env_name", p.EnvName)
	}

	return cmd
}

func (b *Builder) buildConfigDelete(p *ConfigDeleteParams) []string {
	cmd := []string{b.binaryPath, "config", "delete"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	cmd = append(cmd, "--sync_id", p.SyncID)
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildConfigList(p *ConfigListParams) []string {
	cmd := []string{b.binaryPath, "config", "list"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	if p.EnvName != "" {
		cmd = append(cmd, "--env_name", p.EnvName)
	}
	return cmd
}

func (b *Builder) buildSync(p *SyncParams) []string {
	cmd := []string{b.binaryPath, "sync"}
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.Resume {
		cmd = append(cmd, "--resume")
	}
	if p.RunID != "" {
		cmd = append(cmd, "--run_id", p.RunID)
	}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	if p.FastBCPDirPath != "" {
		cmd = append(cmd, "--fastbcp_dir_path", p.FastBCPDirPath)
	}
	return appendCommon(cmd, p.CommonOptions)
}

func (b *Builder) buildSyncExport(p *SyncExportParams) []string {
	cmd := []string{b.binaryPath, "sync[export]"}
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	if p.FastBCPDirPath != "" {
		cmd = append(cmd, "--fastbcp_dir_path", p.FastBCPDirPath)
	}
	return appendCommon(cmd, p.CommonOptions)
}

func (b *Builder) buildSyncPublish(p *SyncPublishParams) []string {
	cmd := []string{b.binaryPath, "sync[publish]"}
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.RunID != "" {
		cmd = append(cmd, "--run_id", p.RunID)
	}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	return appendCommon(cmd, p.CommonOptions)
}

func (b *Builder) buildRun(p *RunParams) []string {
	cmd := []string{b.binaryPath, "run"}
	cmd = append(cmd, "-c", p.Config)
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	if p.LogDBAuthID != "" {
		cmd = append(cmd, "--log_db_auth_id", p.LogDBAuthID)
	}
	return appendCommon(cmd, p.CommonOptions)
}

func (b *Builder) buildStatus(p *StatusParams) []string {
	cmd := []string{b.binaryPath, "status"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.RunID != "" {
		cmd = append(cmd, "--run_id", p.RunID)
	}
	if p.Verbose {
		cmd = append(cmd, "--verbose")
	}
	return cmd
}

func (b *Builder) buildCleanup(p *CleanupParams) []string {
	cmd := []string{b.binaryPath, "cleanup"}
	cmd = appendGlobal(cmd, p.GlobalOptions)
	cmd = append(cmd, "--sync_id", p.SyncID)
	if p.OlderThan != "" {
		cmd = append(cmd, "--older-than", p.OlderThan)
	}
	if p.Status != "" {
		cmd = append(cmd, "--status", p.Status)
	}
	if p.DryRun {
		cmd = append(cmd, "--dry-run")
	}
	return cmd
}
