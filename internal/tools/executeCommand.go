package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lakexpress/mcp-server/internal/logger"
	"github.com/lakexpress/mcp-server/internal/state"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrConfirmationRequired gates every subprocess execution. Nothing is
// consumed or spawned until the caller sets confirmation=true.
var ErrConfirmationRequired = errors.New(
	"confirmation required: review the preview and set confirmation=true to execute")

// ErrBinaryUnavailable is returned when the LakeXpress binary was not
// found at startup.
var ErrBinaryUnavailable = errors.New(
	"LakeXpress binary not found or not accessible; check LAKEXPRESS_PATH")

type ExecuteCommandInput struct {
	PreviewToken string `json:"preview_token" jsonschema:"required" jsonschema_description:"Token returned by preview_command identifying the command to run"`
	Confirmation bool   `json:"confirmation" jsonschema:"required" jsonschema_description:"Must be true to execute. This confirms the previewed command has been reviewed."`
}

type ExecuteCommandOutput struct {
	Success         bool    `json:"success" jsonschema_description:"Whether the command exited with code 0"`
	ExitCode        int     `json:"exit_code" jsonschema_description:"Subprocess exit code"`
	Stdout          string  `json:"stdout" jsonschema_description:"Captured standard output (possibly truncated)"`
	Stderr          string  `json:"stderr,omitempty" jsonschema_description:"Captured standard error (possibly truncated)"`
	StdoutTruncated bool    `json:"stdout_truncated,omitempty" jsonschema_description:"True if stdout was truncated"`
	StderrTruncated bool    `json:"stderr_truncated,omitempty" jsonschema_description:"True if stderr was truncated"`
	DurationSeconds float64 `json:"duration_seconds" jsonschema_description:"Wall-clock execution time"`
	LogPath         string  `json:"log_path,omitempty" jsonschema_description:"Path to the persisted execution log"`
}

func GetExecuteCommandTool(deps *Deps) *ToolDefinition[ExecuteCommandInput, ExecuteCommandOutput] {
	return NewToolDefinition[ExecuteCommandInput, ExecuteCommandOutput](
		"execute_command",
		"Execute a LakeXpress command that was previously previewed, identified by its preview token. "+
			"IMPORTANT: You must set confirmation=true to execute. "+
			"Each preview token can be executed at most once.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ExecuteCommandInput) (*mcp.CallToolResult, ExecuteCommandOutput, error) {
			return executeCommandHandler(ctx, req, input, deps)
		},
	)
}

func executeCommandHandler(ctx context.Context, req *mcp.CallToolRequest, input ExecuteCommandInput, deps *Deps) (*mcp.CallToolResult, ExecuteCommandOutput, error) {
	// The confirmation gate comes first: a refused call must leave the
	// preview unconsumed so the caller can confirm and retry.
	if !input.Confirmation {
		logger.LogToolCall("execute_command", ErrConfirmationRequired)
		return nil, ExecuteCommandOutput{}, ErrConfirmationRequired
	}

	if deps.Runner == nil {
		logger.LogToolCall("execute_command", ErrBinaryUnavailable)
		return nil, ExecuteCommandOutput{}, ErrBinaryUnavailable
	}

	preview, err := deps.Previews.Consume(input.PreviewToken)
	if err != nil {
		logger.LogToolCall("execute_command", err)
		return nil, ExecuteCommandOutput{}, fmt.Errorf("preview token %q: %w", input.PreviewToken, err)
	}

	logger.Info("Starting LakeXpress execution", map[string]interface{}{
		"subcommand": preview.Subcommand,
	})

	result, err := deps.Runner.Run(ctx, preview.Argv, deps.Config.Timeout)
	if err != nil {
		logger.LogExecution(preview.Subcommand, -1, 0, err)
		return nil, ExecuteCommandOutput{}, err
	}
	logger.LogExecution(preview.Subcommand, result.ExitCode, result.Duration, nil)

	output := ExecuteCommandOutput{
		Success:         result.ExitCode == 0,
		ExitCode:        result.ExitCode,
		Stdout:          result.Stdout,
		Stderr:          result.Stderr,
		StdoutTruncated: result.StdoutTruncated,
		StderrTruncated: result.StderrTruncated,
		DurationSeconds: result.Duration.Seconds(),
		LogPath:         result.LogPath,
	}

	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, ExecuteCommandOutput{}, fmt.Errorf("JSON marshal error: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, output, nil
}

// IsPreviewError reports whether err is one of the preview-store failures,
// so callers can distinguish a bad token from an execution failure.
func IsPreviewError(err error) bool {
	return errors.Is(err, state.ErrUnknownToken) ||
		errors.Is(err, state.ErrAlreadyExecuted) ||
		errors.Is(err, state.ErrExpired)
}
