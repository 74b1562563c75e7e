package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lakexpress/mcp-server/internal/client"
	"github.com/lakexpress/mcp-server/internal/command"
	"github.com/lakexpress/mcp-server/internal/config"
	"github.com/lakexpress/mcp-server/internal/logger"
	"github.com/lakexpress/mcp-server/internal/registry"
	"github.com/lakexpress/mcp-server/internal/state"
	"github.com/lakexpress/mcp-server/internal/tools"
	"github.com/lakexpress/mcp-server/internal/version"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version of this server, reported in the MCP handshake.
const Version = "v0.1.0"

// NewMCPServer builds the MCP server with all six tools registered.
// A missing binary is not fatal: preview and the static tools keep
// working, and execute_command reports the problem on use.
func NewMCPServer(cfg *config.Config) (*mcp.Server, error) {
	impl := &mcp.Implementation{Name: "lakexpress-mcp", Version: Version}
	server := mcp.NewServer(impl, nil)

	reg := registry.New()

	deps := &tools.Deps{
		Config:   cfg,
		Registry: reg,
		Builder:  command.NewBuilder(cfg.BinaryPath, reg),
		Previews: state.NewPreviewStore(cfg.PreviewTTL),
		Detector: version.NewDetector(cfg.BinaryPath),
	}

	binary, err := client.NewBinary(cfg.BinaryPath, cfg.LogDir)
	if err != nil {
		logger.Warn("LakeXpress binary unavailable; execute_command will be refused", map[string]interface{}{
			"path":  cfg.BinaryPath,
			"error": err.Error(),
		})
	} else {
		deps.Runner = binary
	}

	tools.RegisterTools(server, deps)

	return server, nil
}

// RunStdio serves the MCP protocol over stdio until the context is
// cancelled by SIGINT/SIGTERM.
func RunStdio(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := NewMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	logger.Info("LakeXpress MCP Server running", map[string]interface{}{
		"binary":  cfg.BinaryPath,
		"timeout": cfg.Timeout.String(),
		"log_dir": cfg.LogDir,
	})

	return server.Run(ctx, &mcp.StdioTransport{})
}
