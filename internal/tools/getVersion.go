package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lakexpress/mcp-server/internal/logger"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type GetVersionInput struct{}

type VersionCapabilities struct {
	SourceDatabases     []string `json:"source_databases"`
	LogDatabases        []string `json:"log_databases"`
	StorageBackends     []string `json:"storage_backends"`
	PublishTargets      []string `json:"publish_targets"`
	CompressionTypes    []string `json:"compression_types"`
	Commands            []string `json:"commands"`
	SupportsNoBanner    bool     `json:"supports_no_banner"`
	SupportsVersionFlag bool     `json:"supports_version_flag"`
	SupportsIncremental bool     `json:"supports_incremental"`
	SupportsCleanup     bool     `json:"supports_cleanup"`
}

type GetVersionOutput struct {
	Version      string              `json:"version,omitempty" jsonschema_description:"Detected LakeXpress version, empty if detection failed"`
	Detected     bool                `json:"detected" jsonschema_description:"Whether the version was detected from the binary"`
	BinaryPath   string              `json:"binary_path" jsonschema_description:"Configured path to the LakeXpress binary"`
	Capabilities VersionCapabilities `json:"capabilities" jsonschema_description:"Capabilities resolved for the detected version"`
}

func GetVersionTool(deps *Deps) *ToolDefinition[GetVersionInput, GetVersionOutput] {
	return NewToolDefinition[GetVersionInput, GetVersionOutput](
		"get_version",
		"Get the detected LakeXpress binary version, capabilities, "+
			"and supported databases, storage backends, and publishing targets.",
		func(ctx context.Context, req *mcp.CallToolRequest, input GetVersionInput) (*mcp.CallToolResult, GetVersionOutput, error) {
			return getVersionHandler(ctx, req, input, deps)
		},
	)
}

func getVersionHandler(ctx context.Context, req *mcp.CallToolRequest, input GetVersionInput, deps *Deps) (*mcp.CallToolResult, GetVersionOutput, error) {
	detected := deps.Detector.Detect(ctx)
	caps := deps.Detector.Capabilities(ctx)
	logger.LogToolCall("get_version", nil)

	output := GetVersionOutput{
		Detected:   detected != nil,
		BinaryPath: deps.Config.BinaryPath,
		Capabilities: VersionCapabilities{
			SourceDatabases:     caps.SourceDatabases,
			LogDatabases:        caps.LogDatabases,
			StorageBackends:     caps.StorageBackends,
			PublishTargets:      caps.PublishTargets,
			CompressionTypes:    caps.CompressionTypes,
			Commands:            caps.Commands,
			SupportsNoBanner:    caps.SupportsNoBanner,
			SupportsVersionFlag: caps.SupportsVersionFlag,
			SupportsIncremental: caps.SupportsIncremental,
			SupportsCleanup:     caps.SupportsCleanup,
		},
	}
	if detected != nil {
		output.Version = detected.String()
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, GetVersionOutput{}, fmt.Errorf("JSON marshal error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}
