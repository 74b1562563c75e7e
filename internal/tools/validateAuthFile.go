package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lakexpress/mcp-server/internal/auth"
	"github.com/lakexpress/mcp-server/internal/logger"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ValidateAuthFileInput struct {
	FilePath        string   `json:"file_path" jsonschema:"required" jsonschema_description:"Path to the authentication JSON file"`
	RequiredAuthIDs []string `json:"required_auth_ids,omitempty" jsonschema_description:"Optional list of auth_id values that must be present"`
}

type ValidateAuthFileOutput struct {
	Path       string       `json:"path" jsonschema_description:"The validated file path"`
	Valid      bool         `json:"valid" jsonschema_description:"Whether the file passed all checks"`
	EntryCount int          `json:"entry_count" jsonschema_description:"Number of credential entries found"`
	AuthIDs    []string     `json:"auth_ids,omitempty" jsonschema_description:"Credential IDs found in the file"`
	Issues     []auth.Issue `json:"issues,omitempty" jsonschema_description:"Validation problems, empty on success"`
}

func GetValidateAuthFileTool(deps *Deps) *ToolDefinition[ValidateAuthFileInput, ValidateAuthFileOutput] {
	return NewToolDefinition[ValidateAuthFileInput, ValidateAuthFileOutput](
		"validate_auth_file",
		"Validate that an authentication file exists, is valid JSON, "+
			"and optionally check for specific auth_id entries.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ValidateAuthFileInput) (*mcp.CallToolResult, ValidateAuthFileOutput, error) {
			return validateAuthFileHandler(ctx, req, input, deps)
		},
	)
}

func validateAuthFileHandler(ctx context.Context, req *mcp.CallToolRequest, input ValidateAuthFileInput, deps *Deps) (*mcp.CallToolResult, ValidateAuthFileOutput, error) {
	report := auth.Validate(input.FilePath, input.RequiredAuthIDs)
	logger.LogToolCall("validate_auth_file", nil)

	output := ValidateAuthFileOutput{
		Path:       report.Path,
		Valid:      report.Valid,
		EntryCount: report.EntryCount,
		AuthIDs:    report.AuthIDs,
		Issues:     report.Issues,
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, ValidateAuthFileOutput{}, fmt.Errorf("JSON marshal error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
