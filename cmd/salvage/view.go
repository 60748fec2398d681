package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Cyclone1070/salvage/internal/app"
)

// cliView reports progress as plain lines and remembers the last error so a
// subcommand can turn it into its exit status.
type cliView struct {
	app.NopView

	mu      sync.Mutex
	out     io.Writer
	lastErr string
}

func newCLIView(out io.Writer) *cliView {
	return &cliView{out: out}
}

func (v *cliView) UpdateProgress(value int, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "[%3d%%] %s\n", value, message)
}

func (v *cliView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastErr = message
}

// Err returns the last reported error, or nil.
func (v *cliView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.lastErr == "" {
		return nil
	}
	return errors.New(v.lastErr)
}
