package disk

import (
	"context"

	"github.com/Cyclone1070/salvage/internal/service/executor"
)

// commandRunner runs external tools.
type commandRunner interface {
	Run(ctx context.Context, cmd []string) (*executor.Result, error)
	RunCombined(ctx context.Context, cmd []string) (*executor.Result, error)
}

// dirCreator creates mount point directories.
type dirCreator interface {
	EnsureDirs(path string) error
}
