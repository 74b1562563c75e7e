package workflow

import (
	"fmt"
	"strings"

	"github.com/lakexpress/mcp-server/internal/registry"
)

// UnsupportedError reports that one of the requested kinds is not in the
// capability registry. Field names the offending input.
type UnsupportedError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s %q (supported: %s)",
		e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// Step is one suggested command in a workflow.
type Step struct {
	Step        string `json:"step"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// Plan is an ordered workflow suggestion for a use case.
type Plan struct {
	SourceType    string `json:"source_type"`
	Destination   string `json:"destination"`
	PublishTarget string `json:"publish_target,omitempty"`
	Steps         []Step `json:"steps"`
}

// Suggest returns the fixed command sequence for exporting sourceType to
// destination, optionally publishing to publishTarget. Kinds are matched
// case-insensitively ("PostgreSQL" and "postgresql" are the same source).
// The output is purely table-driven: identical inputs always yield
// identical plans.
func Suggest(reg *registry.Registry, sourceType, destination, publishTarget string) (*Plan, error) {
	sourceType = strings.ToLower(sourceType)
	destination = strings.ToLower(destination)
	publishTarget = strings.ToLower(publishTarget)

	if !reg.SupportsSourceDatabase(sourceType) {
		return nil, &UnsupportedError{
			Field:   "source_type",
			Value:   sourceType,
			Allowed: reg.SourceDatabases(),
		}
	}
	if !reg.SupportsStorageBackend(destination) {
		return nil, &UnsupportedError{
			Field:   "destination",
			Value:   destination,
			Allowed: reg.StorageBackends(),
		}
	}
	if publishTarget != "" && !reg.SupportsPublishTarget(publishTarget) {
		return nil, &UnsupportedError{
			Field:   "publish_target",
			Value:   publishTarget,
			Allowed: reg.PublishTargets(),
		}
	}

	plan := &Plan{
		SourceType:    sourceType,
		Destination:   destination,
		PublishTarget: publishTarget,
	}

	plan.Steps = append(plan.Steps, Step{
		Step:        "1",
		Command:     "logdb init",
		Description: "Initialize the log database schema (first-time setup only)",
		Example:     "LakeXpress logdb init -a auth.json --log_db_auth_id export_db",
	})

	configDesc := fmt.Sprintf("Create sync configuration for %s source", sourceType)
	configExample := "LakeXpress config create -a auth.json --log_db_auth_id export_db --source_db_auth_id source_db"
	if destination == "local" {
		configExample += " --output_dir ./exports"
		configDesc += " with local storage"
	} else {
		configExample += fmt.Sprintf(" --target_storage_id %s_storage", destination)
		configDesc += fmt.Sprintf(" with %s storage", destination)
	}
	if publishTarget != "" {
		configExample += fmt.Sprintf(" --publish_target %s_target", publishTarget)
		configDesc += fmt.Sprintf(" and %s publishing", publishTarget)
	}
	plan.Steps = append(plan.Steps, Step{
		Step:        "2",
		Command:     "config create",
		Description: configDesc,
		Example:     configExample,
	})

	if publishTarget != "" {
		plan.Steps = append(plan.Steps, Step{
			Step:        "3",
			Command:     "sync",
			Description: "Execute full sync (export + publish)",
			Example:     "LakeXpress sync --sync_id <sync_id>",
		}, Step{
			Step:        "3a",
			Command:     "sync[export] + sync[publish]",
			Description: "Alternative: run export and publish separately",
			Example:     "LakeXpress 'sync[export]' --sync_id <sync_id>\nLakeXpress 'sync[publish]' --sync_id <sync_id>",
		})
	} else {
		plan.Steps = append(plan.Steps, Step{
			Step:        "3",
			Command:     "sync[export]",
			Description: "Execute export only (no publishing target configured)",
			Example:     "LakeXpress 'sync[export]' --sync_id <sync_id>",
		})
	}

	plan.Steps = append(plan.Steps, Step{
		Step:        "4",
		Command:     "status",
		Description: "Check the status of the sync run",
		Example:     "LakeXpress status -a auth.json --log_db_auth_id export_db --sync_id <sync_id>",
	})

	return plan, nil
}
