package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lakexpress/mcp-server/internal/logger"
	"github.com/lakexpress/mcp-server/internal/registry"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ListCapabilitiesInput struct{}

type ListCapabilitiesOutput struct {
	SourceDatabases  []string               `json:"source_databases" jsonschema_description:"Supported source database types as 'Label (id)' entries"`
	LogDatabases     []string               `json:"log_databases" jsonschema_description:"Supported log database types as 'Label (id)' entries"`
	StorageBackends  []string               `json:"storage_backends" jsonschema_description:"Supported storage backends as 'Label (id)' entries"`
	PublishTargets   []string               `json:"publish_targets" jsonschema_description:"Supported publishing targets as 'Label (id)' entries"`
	CompressionTypes []string               `json:"compression_types" jsonschema_description:"Supported Parquet compression types"`
	Commands         []registry.CommandInfo `json:"commands" jsonschema_description:"Available subcommands with descriptions"`
}

func GetListCapabilitiesTool(deps *Deps) *ToolDefinition[ListCapabilitiesInput, ListCapabilitiesOutput] {
	return NewToolDefinition[ListCapabilitiesInput, ListCapabilitiesOutput](
		"list_capabilities",
		"List supported source databases, log databases, storage backends, "+
			"publishing targets, compression types, and available commands.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ListCapabilitiesInput) (*mcp.CallToolResult, ListCapabilitiesOutput, error) {
			return listCapabilitiesHandler(ctx, req, input, deps)
		},
	)
}

func listCapabilitiesHandler(ctx context.Context, req *mcp.CallToolRequest, input ListCapabilitiesInput, deps *Deps) (*mcp.CallToolResult, ListCapabilitiesOutput, error) {
	reg := deps.Registry
	output := ListCapabilitiesOutput{
		SourceDatabases:  reg.SourceDatabaseLabels(),
		LogDatabases:     reg.LogDatabaseLabels(),
		StorageBackends:  reg.StorageBackendLabels(),
		PublishTargets:   reg.PublishTargetLabels(),
		CompressionTypes: reg.CompressionTypes(),
		Commands:         reg.Commands(),
	}
	logger.LogToolCall("list_capabilities", nil)

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, ListCapabilitiesOutput{}, fmt.Errorf("JSON marshal error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
