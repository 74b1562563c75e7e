package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lakexpress/mcp-server/internal/logger"
)

// maxCapturedOutput bounds how much of each stream is kept in the result.
// The full output still goes to the execution log.
const maxCapturedOutput = 64 * 1024

// TimeoutError reports that the subprocess was killed after exceeding the
// configured timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("execution timed out after %s", e.Timeout)
}

// NotFoundError reports that the binary could not be found or spawned.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("LakeXpress binary not found at: %s", e.Path)
}

// RunResult captures one subprocess execution. A non-zero ExitCode is
// data, not an error; interpretation belongs to the caller.
type RunResult struct {
	ExitCode        int
	Stdout          string
	Stderr          string
	StdoutTruncated bool
	StderrTruncated bool
	Duration        time.Duration
	LogPath         string
}

// Binary wraps the external LakeXpress executable.
type Binary struct {
	path   string
	logDir string
}

// NewBinary validates that path points to an executable regular file.
func NewBinary(path, logDir string) (*Binary, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("LakeXpress path is not a file: %s", path)
	}
	if info.Mode().Perm()&0111 == 0 {
		return nil, fmt.Errorf("LakeXpress binary is not executable: %s", path)
	}

	return &Binary{path: path, logDir: logDir}, nil
}

func (b *Binary) Path() string { return b.path }

// Run executes argv (binary path first) under the given timeout, captures
// bounded stdout/stderr, and persists an execution log before returning.
func (b *Binary) Run(ctx context.Context, argv []string, timeout time.Duration) (*RunResult, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty argument vector")
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		logger.Error("LakeXpress execution timed out", nil, map[string]interface{}{
			"timeout": timeout.String(),
		})
		return nil, &TimeoutError{Timeout: timeout}
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else if errors.Is(err, exec.ErrNotFound) || os.IsNotExist(err) {
			return nil, &NotFoundError{Path: argv[0]}
		} else {
			return nil, fmt.Errorf("execution failed: %w", err)
		}
	}

	result := &RunResult{
		ExitCode: exitCode,
		Duration: duration,
	}
	result.Stdout, result.StdoutTruncated = truncate(stdout.String())
	result.Stderr, result.StderrTruncated = truncate(stderr.String())

	result.LogPath = b.saveExecutionLog(argv, exitCode, stdout.String(), stderr.String(), duration)

	logger.Info(fmt.Sprintf("LakeXpress completed in %.2fs with return code %d",
		duration.Seconds(), exitCode))

	return result, nil
}

func truncate(s string) (string, bool) {
	if len(s) <= maxCapturedOutput {
		return s, false
	}
	return s[:maxCapturedOutput], true
}

// saveExecutionLog writes a timestamped log entry to the log directory.
// Failure to write is a warning, not an execution failure.
func (b *Binary) saveExecutionLog(argv []string, exitCode int, stdout, stderr string, duration time.Duration) string {
	if b.logDir == "" {
		return ""
	}

	if err := os.MkdirAll(b.logDir, 0755); err != nil {
		logger.Warn("Failed to create execution log directory", map[string]interface{}{
			"dir":   b.logDir,
			"error": err.Error(),
		})
		return ""
	}

	timestamp := time.Now().Format("20060102_150405")
	logPath := filepath.Join(b.logDir, fmt.Sprintf("lakexpress_%s.log", timestamp))

	divider := strings.Repeat("=", 80)
	var sb strings.Builder
	sb.WriteString("LakeXpress Execution Log\n")
	sb.WriteString(divider + "\n\n")
	sb.WriteString("Timestamp: " + time.Now().Format(time.RFC3339) + "\n")
	sb.WriteString(fmt.Sprintf("Duration: %.2f seconds\n", duration.Seconds()))
	sb.WriteString(fmt.Sprintf("Return Code: %d\n\n", exitCode))
	sb.WriteString("Command:\n" + strings.Join(argv, " ") + "\n\n")
	sb.WriteString(divider + "\n")
	sb.WriteString("STDOUT:\n" + stdout + "\n\n")
	sb.WriteString(divider + "\n")
	sb.WriteString("STDERR:\n" + stderr + "\n")

	if err := os.WriteFile(logPath, []byte(sb.String()), 0644); err != nil {
		logger.Warn("Failed to save execution log", map[string]interface{}{
			"path":  logPath,
			"error": err.Error(),
		})
		return ""
	}

	logger.Info("Execution log saved to: " + logPath)
	return logPath
}
