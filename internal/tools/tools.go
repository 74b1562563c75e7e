package tools

import (
	"context"
	"time"

	"github.com/lakexpress/mcp-server/internal/client"
	"github.com/lakexpress/mcp-server/internal/command"
	"github.com/lakexpress/mcp-server/internal/config"
	"github.com/lakexpress/mcp-server/internal/registry"
	"github.com/lakexpress/mcp-server/internal/state"
	"github.com/lakexpress/mcp-server/internal/version"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Runner executes a previously built argument vector. client.Binary is the
// production implementation; tests substitute a double.
type Runner interface {
	Run(ctx context.Context, argv []string, timeout time.Duration) (*client.RunResult, error)
}

// Deps carries everything the tool handlers need. Runner is nil when the
// binary was not found at startup; handlers that need it report that
// instead of failing to register.
type Deps struct {
	Config   *config.Config
	Registry *registry.Registry
	Builder  *command.Builder
	Previews *state.PreviewStore
	Runner   Runner
	Detector *version.Detector
}

func RegisterTools(s *mcp.Server, deps *Deps) {
	GetPreviewCommandTool(deps).Register(s)
	GetExecuteCommandTool(deps).Register(s)
	GetValidateAuthFileTool(deps).Register(s)
	GetListCapabilitiesTool(deps).Register(s)
	GetSuggestWorkflowTool(deps).Register(s)
	GetVersionTool(deps).Register(s)
}
