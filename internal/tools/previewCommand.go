package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lakexpress/mcp-server/internal/command"
	"github.com/lakexpress/mcp-server/internal/logger"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PreviewCommandOutput struct {
	PreviewToken     string   `json:"preview_token" jsonschema_description:"Opaque token identifying this preview; pass it to execute_command"`
	Command          string   `json:"command" jsonschema_description:"The subcommand that was built"`
	Argv             []string `json:"argv" jsonschema_description:"Exact argument vector that will be executed"`
	Display          string   `json:"display" jsonschema_description:"Human-readable rendering of the command"`
	Explanation      string   `json:"explanation" jsonschema_description:"What this command will do"`
	ExpiresInSeconds int      `json:"expires_in_seconds" jsonschema_description:"How long the preview token stays valid"`
}

func GetPreviewCommandTool(deps *Deps) *ToolDefinition[command.Request, PreviewCommandOutput] {
	return NewToolDefinition[command.Request, PreviewCommandOutput](
		"preview_command",
		"Build and preview a LakeXpress CLI command WITHOUT executing it. "+
			"This shows the exact command that will be run and returns a preview token. "+
			"Use this FIRST, then pass the token to execute_command.",
		func(ctx context.Context, req *mcp.CallToolRequest, input command.Request) (*mcp.CallToolResult, PreviewCommandOutput, error) {
			return previewCommandHandler(ctx, req, input, deps)
		},
	)
}

func previewCommandHandler(ctx context.Context, req *mcp.CallToolRequest, input command.Request, deps *Deps) (*mcp.CallToolResult, PreviewCommandOutput, error) {
	applyFastBCPDefault(&input, deps.Config.FastBCPDirPath)

	argv, err := deps.Builder.Build(&input)
	if err != nil {
		logger.LogToolCall("preview_command", err)
		return nil, PreviewCommandOutput{}, err
	}

	display := command.Display(argv)
	preview := deps.Previews.Put(string(input.Command), argv, display)
	logger.LogToolCall("preview_command", nil)

	output := PreviewCommandOutput{
		PreviewToken:     preview.Token,
		Command:          string(input.Command),
		Argv:             argv,
		Display:          display,
		Explanation:      command.Explain(&input),
		ExpiresInSeconds: int(deps.Config.PreviewTTL.Seconds()),
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, PreviewCommandOutput{}, fmt.Errorf("JSON marshal error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

// applyFastBCPDefault fills fastbcp_dir_path from the environment for the
// commands that accept it, when the caller did not set it explicitly.
func applyFastBCPDefault(req *command.Request, fastbcpDir string) {
	if fastbcpDir == "" {
		return
	}
	if req.ConfigCreate != nil && req.ConfigCreate.FastBCPDirPath == "" {
		req.ConfigCreate.FastBCPDirPath = fastbcpDir
	}
	if req.Sync != nil && req.Sync.FastBCPDirPath == "" {
		req.Sync.FastBCPDirPath = fastbcpDir
	}
	if req.SyncExport != nil && req.SyncExport.FastBCPDirPath == "" {
		req.SyncExport.FastBCPDirPath = fastbcpDir
	}
}
