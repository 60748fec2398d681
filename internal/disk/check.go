package disk

import (
	"context"
	"strings"

	"github.com/Cyclone1070/salvage/internal/logging"
	"github.com/Cyclone1070/salvage/internal/service/executor"
	"go.uber.org/zap"
)

// ConsistentDetails is the detail text of a clean check.
const ConsistentDetails = "filesystem is consistent"

// CheckFilesystem runs the read-only checker for the disk's filesystem.
// ext2/3/4 use "fsck.ext4 -n" and are consistent when the report says "clean";
// NTFS uses "ntfsfix -n" and is consistent on exit 0. Other filesystems are unsupported.
func (m *Manager) CheckFilesystem(ctx context.Context, d Disk) FilesystemStatus {
	log := m.logger.With(zap.String(logging.FieldDevice, d.DevicePath))

	switch strings.ToLower(d.Filesystem) {
	case "ext2", "ext3", "ext4":
		cmd := []string{"fsck.ext4", "-n", d.DevicePath}
		res, err := m.runner.RunCombined(ctx, cmd)
		if err != nil {
			return m.checkFailed(log, cmd, res, err)
		}
		if strings.Contains(res.Stdout, "clean") {
			return FilesystemStatus{IsConsistent: true, Details: ConsistentDetails}
		}
		return FilesystemStatus{IsConsistent: false, Details: res.Stdout}

	case "ntfs":
		cmd := []string{"ntfsfix", "-n", d.DevicePath}
		res, err := m.runner.RunCombined(ctx, cmd)
		if err != nil {
			return m.checkFailed(log, cmd, res, err)
		}
		return FilesystemStatus{IsConsistent: true, Details: ConsistentDetails}

	default:
		unsupported := &UnsupportedFilesystemError{Filesystem: d.Filesystem}
		log.Error("unsupported filesystem",
			zap.String(logging.FieldCode, CodeUnsupported),
			zap.String("filesystem", d.Filesystem))
		return FilesystemStatus{IsConsistent: false, Details: unsupported.Error()}
	}
}

func (m *Manager) checkFailed(log *zap.Logger, cmd []string, res *executor.Result, err error) FilesystemStatus {
	failure := commandFailure(CodeCheck, cmd, res, err)
	log.Error("filesystem check failed", zap.String(logging.FieldCode, CodeCheck), zap.Error(failure))

	details := ""
	if res != nil {
		details = res.Stdout
	}
	if strings.TrimSpace(details) == "" {
		details = failure.Error()
	}
	return FilesystemStatus{IsConsistent: false, Details: details}
}
