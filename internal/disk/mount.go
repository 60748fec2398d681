package disk

import (
	"context"
	"path/filepath"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
)

// MountPointFor returns the directory a device is mounted on: <mount root>/<device name>.
func (m *Manager) MountPointFor(d Disk) string {
	return filepath.Join(m.mountRoot, filepath.Base(d.DevicePath))
}

// MountDisk mounts the device on its mount point, creating the directory first.
// Mounts are read-only unless disk.read_only_mount is disabled.
func (m *Manager) MountDisk(ctx context.Context, d Disk) (string, error) {
	if d.DevicePath == "" {
		return "", ErrNoDevice
	}

	mountPoint := m.MountPointFor(d)
	log := m.logger.With(
		zap.String(logging.FieldDevice, d.DevicePath),
		zap.String("mount_point", mountPoint),
	)

	if err := m.dirs.EnsureDirs(mountPoint); err != nil {
		log.Error("failed to create mount point", zap.String(logging.FieldCode, CodeMount), zap.Error(err))
		return "", &MountError{Device: d.DevicePath, MountPoint: mountPoint, Cause: err}
	}

	cmd := []string{"mount"}
	if m.readOnly {
		cmd = append(cmd, "-o", "ro")
	}
	cmd = append(cmd, d.DevicePath, mountPoint)

	res, err := m.runner.Run(ctx, cmd)
	if err != nil {
		failure := commandFailure(CodeMount, cmd, res, err)
		log.Error("mount failed", zap.String(logging.FieldCode, CodeMount), zap.Error(failure))
		return "", &MountError{Device: d.DevicePath, MountPoint: mountPoint, Cause: failure}
	}

	log.Debug("mounted", zap.Bool("read_only", m.readOnly))
	return mountPoint, nil
}

// UnmountDisk unmounts the device.
func (m *Manager) UnmountDisk(ctx context.Context, d Disk) error {
	if d.DevicePath == "" {
		return ErrNoDevice
	}

	cmd := []string{"umount", d.DevicePath}
	res, err := m.runner.Run(ctx, cmd)
	if err != nil {
		failure := commandFailure(CodeUnmount, cmd, res, err)
		m.logger.Error("unmount failed",
			zap.String(logging.FieldDevice, d.DevicePath),
			zap.String(logging.FieldCode, CodeUnmount),
			zap.Error(failure))
		return &UnmountError{Device: d.DevicePath, Cause: failure}
	}
	return nil
}
