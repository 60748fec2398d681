package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Cyclone1070/salvage/internal/config"
	"go.uber.org/zap"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// Output returns stdout followed by stderr.
// For combined runs everything is already in Stdout.
func (r *Result) Output() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return strings.TrimRight(r.Stdout, "\n") + "\n" + r.Stderr
}

// OSCommandExecutor runs external tools with a timeout and graceful shutdown.
// Tools run under LC_ALL=C so their output can be parsed.
type OSCommandExecutor struct {
	timeout   time.Duration
	grace     time.Duration
	maxOutput int
	logger    *zap.Logger
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config, logger *zap.Logger) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OSCommandExecutor{
		timeout:   time.Duration(cfg.Disk.CommandTimeoutSeconds) * time.Second,
		grace:     time.Duration(cfg.Disk.GracefulShutdownMs) * time.Millisecond,
		maxOutput: int(cfg.Disk.MaxCommandOutputSize),
		logger:    logger,
	}
}

// Run executes a command with stdout and stderr collected separately.
// A non-zero exit returns both the result and the *exec.ExitError.
func (f *OSCommandExecutor) Run(ctx context.Context, command []string) (*Result, error) {
	return f.run(ctx, command, false)
}

// RunCombined executes a command with stderr merged into stdout, preserving interleaving.
func (f *OSCommandExecutor) RunCombined(ctx context.Context, command []string) (*Result, error) {
	return f.run(ctx, command, true)
}

func (f *OSCommandExecutor) run(ctx context.Context, command []string, combined bool) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	// We don't use CommandContext here because we want to handle graceful shutdown
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Stdin = nil
	// Orphaned children may hold the pipes open after the tool itself exits.
	cmd.WaitDelay = f.grace

	stdout := newCollector(f.maxOutput)
	stderr := stdout
	if !combined {
		stderr = newCollector(f.maxOutput)
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Stage: "start", Cause: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-timer.C:
		// Try graceful shutdown
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(f.grace):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	res := &Result{
		Stdout:    stdout.String(),
		ExitCode:  exitCode(execErr),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}
	if !combined {
		res.Stderr = stderr.String()
	}

	f.logger.Debug("command finished",
		zap.Strings("command", command),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("truncated", res.Truncated),
	)

	return res, execErr
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
