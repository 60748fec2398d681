package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// lsblkColumns is the column set requested from lsblk.
// HEALTH is not understood by every lsblk build; detection retries without it.
const lsblkColumns = "NAME,SIZE,FSTYPE,MOUNTPOINT,HEALTH"

type lsblkOutput struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

type lsblkDevice struct {
	Name       string        `json:"name"`
	Size       any           `json:"size"`
	FSType     *string       `json:"fstype"`
	MountPoint *string       `json:"mountpoint"`
	Health     *string       `json:"health"`
	Children   []lsblkDevice `json:"children"`
}

// DetectDisks lists block devices and their partitions.
// On failure it returns an empty list together with a DetectError.
func (m *Manager) DetectDisks(ctx context.Context) ([]Disk, error) {
	out, err := m.lsblk(ctx, lsblkColumns)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unknown column") {
		m.logger.Debug("lsblk does not support HEALTH, retrying without it")
		out, err = m.lsblk(ctx, strings.TrimSuffix(lsblkColumns, ",HEALTH"))
	}
	if err != nil {
		m.logger.Error("failed to detect disks", zap.Error(err))
		return []Disk{}, &DetectError{Cause: err}
	}

	disks, err := ParseLsblk(out)
	if err != nil {
		m.logger.Error("failed to parse lsblk output", zap.Error(err))
		return []Disk{}, &DetectError{Cause: err}
	}
	m.logger.Debug("disks detected", zap.Int("count", len(disks)))
	return disks, nil
}

func (m *Manager) lsblk(ctx context.Context, columns string) (string, error) {
	cmd := []string{"lsblk", "-J", "-o", columns}
	res, err := m.runner.Run(ctx, cmd)
	if err != nil {
		return "", commandFailure(CodeDetect, cmd, res, err)
	}
	return res.Stdout, nil
}

// ParseLsblk converts lsblk JSON output into disks, flattening partitions
// so each appears after its parent device.
func ParseLsblk(out string) ([]Disk, error) {
	var parsed lsblkOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("invalid lsblk JSON: %w", err)
	}

	disks := []Disk{}
	var walk func(devs []lsblkDevice)
	walk = func(devs []lsblkDevice) {
		for _, d := range devs {
			disks = append(disks, d.toDisk())
			walk(d.Children)
		}
	}
	walk(parsed.BlockDevices)
	return disks, nil
}

func (d lsblkDevice) toDisk() Disk {
	disk := Disk{
		DevicePath:   "/dev/" + d.Name,
		Size:         lsblkSize(d.Size),
		Filesystem:   deref(d.FSType),
		HealthStatus: deref(d.Health),
	}
	if d.MountPoint != nil {
		disk.Mounted = true
		disk.MountPoint = *d.MountPoint
	}
	return disk
}

// lsblkSize accepts both the human readable string and the numeric form printed with -b.
func lsblkSize(v any) int64 {
	switch s := v.(type) {
	case string:
		return ParseSize(s)
	case float64:
		if s < 0 {
			return 0
		}
		return int64(s)
	default:
		return 0
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
