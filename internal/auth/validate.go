package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// IssueKind classifies an auth-file validation problem.
type IssueKind string

const (
	IssueNotFound      IssueKind = "not_found"
	IssueNotAFile      IssueKind = "not_a_file"
	IssueUnreadable    IssueKind = "unreadable"
	IssueInvalidJSON   IssueKind = "invalid_json"
	IssueMissingAuthID IssueKind = "missing_auth_id"
	IssueBadStructure  IssueKind = "bad_structure"
)

// Issue is one validation problem found in an auth file.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// Report is the result of validating an auth file. Valid is true only
// when no issues were found.
type Report struct {
	Path       string   `json:"path"`
	Valid      bool     `json:"valid"`
	EntryCount int      `json:"entry_count"`
	AuthIDs    []string `json:"auth_ids,omitempty"`
	Issues     []Issue  `json:"issues,omitempty"`
}

// Validate checks that the file at path exists, parses as JSON, and (if
// requiredIDs is non-empty) contains every required credential ID. The
// file may be a JSON object keyed by auth_id, or an array of objects each
// carrying an "id" field. Credential payloads are opaque and never
// inspected. The file is read fresh on every call.
func Validate(path string, requiredIDs []string) *Report {
	report := &Report{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			report.Issues = append(report.Issues, Issue{
				Kind:   IssueNotFound,
				Detail: "file not found: " + path,
			})
		} else {
			report.Issues = append(report.Issues, Issue{
				Kind:   IssueUnreadable,
				Detail: fmt.Sprintf("cannot access %s: %v", path, err),
			})
		}
		return report
	}
	if info.IsDir() {
		report.Issues = append(report.Issues, Issue{
			Kind:   IssueNotAFile,
			Detail: "path is not a file: " + path,
		})
		return report
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Issues = append(report.Issues, Issue{
			Kind:   IssueUnreadable,
			Detail: fmt.Sprintf("cannot read %s: %v", path, err),
		})
		return report
	}

	ids, entryCount, issue := parseAuthIDs(data)
	if issue != nil {
		report.Issues = append(report.Issues, *issue)
		return report
	}
	report.EntryCount = entryCount
	report.AuthIDs = ids

	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	for _, required := range requiredIDs {
		if !known[required] {
			report.Issues = append(report.Issues, Issue{
				Kind:   IssueMissingAuthID,
				Detail: fmt.Sprintf("missing auth_id: %q", required),
			})
		}
	}

	report.Valid = len(report.Issues) == 0
	return report
}

func parseAuthIDs(data []byte) ([]string, int, *Issue) {
	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(data, &asObject); err == nil {
		ids := make([]string, 0, len(asObject))
		for id := range asObject {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids, len(asObject), nil
	}

	var asArray []map[string]json.RawMessage
	if err := json.Unmarshal(data, &asArray); err == nil {
		var ids []string
		for _, entry := range asArray {
			if raw, ok := entry["id"]; ok {
				var id string
				if json.Unmarshal(raw, &id) == nil {
					ids = append(ids, id)
				}
			}
		}
		sort.Strings(ids)
		return ids, len(asArray), nil
	}

	if !json.Valid(data) {
		return nil, 0, &Issue{
			Kind:   IssueInvalidJSON,
			Detail: "content is not valid JSON",
		}
	}
	return nil, 0, &Issue{
		Kind:   IssueBadStructure,
		Detail: "expected a JSON object keyed by auth_id, or an array of credential objects",
	}
}
