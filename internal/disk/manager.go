package disk

import (
	"github.com/Cyclone1070/salvage/internal/config"
	"go.uber.org/zap"
)

// Manager detects, mounts, checks and inspects block devices through the
// system tools lsblk, mount, umount, fsck.ext4, ntfsfix, blkid and smartctl.
type Manager struct {
	runner    commandRunner
	dirs      dirCreator
	mountRoot string
	readOnly  bool
	logger    *zap.Logger
}

// NewManager creates a Manager with injected dependencies.
func NewManager(runner commandRunner, dirs dirCreator, cfg *config.Config, logger *zap.Logger) *Manager {
	if runner == nil {
		panic("runner is required")
	}
	if dirs == nil {
		panic("dirs is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		runner:    runner,
		dirs:      dirs,
		mountRoot: cfg.Disk.MountRoot,
		readOnly:  cfg.Disk.ReadOnlyMount,
		logger:    logger,
	}
}
