package mocks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/Cyclone1070/salvage/internal/service/executor"
)

// MockResponse is the scripted outcome of one command.
type MockResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// Err overrides the error derived from ExitCode.
	Err error
	// NotFound simulates a binary missing from PATH: no result, a start error.
	NotFound bool
}

// MockCommandRunner returns scripted results keyed by the space-joined command line.
// Unscripted commands behave as if the binary is not installed.
type MockCommandRunner struct {
	mu        sync.Mutex
	Responses map[string]MockResponse
	Calls     [][]string
	// Combined records which calls went through RunCombined, parallel to Calls.
	Combined []bool
}

// NewMockCommandRunner creates a runner with no scripted commands.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{Responses: make(map[string]MockResponse)}
}

// On scripts the response for a command line.
func (m *MockCommandRunner) On(command string, resp MockResponse) *MockCommandRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[command] = resp
	return m
}

// Run implements the runner used by the disk and app packages.
func (m *MockCommandRunner) Run(ctx context.Context, cmd []string) (*executor.Result, error) {
	return m.run(ctx, cmd, false)
}

// RunCombined records the call as combined; scripted Stderr is appended to Stdout.
func (m *MockCommandRunner) RunCombined(ctx context.Context, cmd []string) (*executor.Result, error) {
	return m.run(ctx, cmd, true)
}

// CallLines returns every recorded command, space-joined.
func (m *MockCommandRunner) CallLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		lines[i] = strings.Join(c, " ")
	}
	return lines
}

func (m *MockCommandRunner) run(ctx context.Context, cmd []string, combined bool) (*executor.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, cmd)
	m.Combined = append(m.Combined, combined)
	resp, ok := m.Responses[strings.Join(cmd, " ")]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return &executor.Result{ExitCode: -1}, err
	}
	if !ok || resp.NotFound {
		return nil, &executor.CommandError{Cmd: cmd[0], Stage: "start", Cause: exec.ErrNotFound}
	}

	res := &executor.Result{Stdout: resp.Stdout, Stderr: resp.Stderr, ExitCode: resp.ExitCode}
	if combined {
		res.Stdout += resp.Stderr
		res.Stderr = ""
	}

	err := resp.Err
	if err == nil && resp.ExitCode != 0 {
		err = fmt.Errorf("exit status %d", resp.ExitCode)
	}
	return res, err
}
