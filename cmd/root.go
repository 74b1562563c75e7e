package main

import (
	"os"

	"github.com/lakexpress/mcp-server/internal/config"
	"github.com/lakexpress/mcp-server/internal/logger"
	"github.com/lakexpress/mcp-server/internal/server"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lakexpress-mcp",
	Short: "MCP server wrapping the LakeXpress export CLI",
	Long: `A Model Context Protocol (MCP) server exposing the LakeXpress
database-to-Parquet export tool to AI clients: command preview with a
confirmation gate, auth file validation, capability listing, workflow
suggestions, and version detection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("binary", "b", os.Getenv("LAKEXPRESS_PATH"), "Path to the LakeXpress binary (env: LAKEXPRESS_PATH)")
	rootCmd.PersistentFlags().String("log-dir", os.Getenv("LAKEXPRESS_LOG_DIR"), "Directory for execution logs (env: LAKEXPRESS_LOG_DIR)")

	stdioCmd := &cobra.Command{
		Use:   "stdio",
		Short: "Run over stdio transport (for local MCP clients)",
		RunE:  runStdioServer,
	}
	rootCmd.AddCommand(stdioCmd)
}

func runStdioServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags win over environment.
	if v, _ := cmd.Flags().GetString("binary"); v != "" {
		cfg.BinaryPath = v
	}
	if v, _ := cmd.Flags().GetString("log-dir"); v != "" {
		cfg.LogDir = v
	}

	if err := logger.Initialize(logger.ConfigFromLoggingConfig(cfg.Logging)); err != nil {
		return err
	}
	defer logger.Shutdown()

	return server.RunStdio(cfg)
}
