package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lakexpress/mcp-server/internal/logger"
	"github.com/lakexpress/mcp-server/internal/workflow"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SuggestWorkflowInput struct {
	SourceType    string `json:"source_type" jsonschema:"required" jsonschema_description:"Source database type (e.g., 'sqlserver', 'postgresql', 'oracle')"`
	Destination   string `json:"destination" jsonschema:"required" jsonschema_description:"Storage destination (e.g., 'local', 's3', 'azure_adls', 'gcs')"`
	PublishTarget string `json:"publish_target,omitempty" jsonschema_description:"Optional publishing target (e.g., 'snowflake', 'databricks', 'fabric')"`
}

type SuggestWorkflowOutput struct {
	SourceType    string          `json:"source_type"`
	Destination   string          `json:"destination"`
	PublishTarget string          `json:"publish_target,omitempty"`
	Steps         []workflow.Step `json:"steps" jsonschema_description:"Ordered commands with example parameters"`
}

func GetSuggestWorkflowTool(deps *Deps) *ToolDefinition[SuggestWorkflowInput, SuggestWorkflowOutput] {
	return NewToolDefinition[SuggestWorkflowInput, SuggestWorkflowOutput](
		"suggest_workflow",
		"Given a use case (source DB type, storage destination, optional publish target), "+
			"suggest the full sequence of LakeXpress commands with example parameters.",
		func(ctx context.Context, req *mcp.CallToolRequest, input SuggestWorkflowInput) (*mcp.CallToolResult, SuggestWorkflowOutput, error) {
			return suggestWorkflowHandler(ctx, req, input, deps)
		},
	)
}

func suggestWorkflowHandler(ctx context.Context, req *mcp.CallToolRequest, input SuggestWorkflowInput, deps *Deps) (*mcp.CallToolResult, SuggestWorkflowOutput, error) {
	plan, err := workflow.Suggest(deps.Registry, input.SourceType, input.Destination, input.PublishTarget)
	if err != nil {
		logger.LogToolCall("suggest_workflow", err)
		return nil, SuggestWorkflowOutput{}, err
	}
	logger.LogToolCall("suggest_workflow", nil)

	output := SuggestWorkflowOutput{
		SourceType:    plan.SourceType,
		Destination:   plan.Destination,
		PublishTarget: plan.PublishTarget,
		Steps:         plan.Steps,
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, SuggestWorkflowOutput{}, fmt.Errorf("JSON marshal error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
