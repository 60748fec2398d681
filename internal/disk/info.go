package disk

import (
	"context"
	"strings"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
)

// smartctl exit status bits meaning the device could not be queried at all.
// Higher bits report disk health problems and still come with usable output.
const smartctlFatalBits = 0b11

// GetDiskInfo gathers model, serial, partition table and SMART data.
// A failed query leaves its field as Unknown (SMART: an empty map) and is logged;
// the call only fails for a disk without a device path.
func (m *Manager) GetDiskInfo(ctx context.Context, d Disk) (DiskInfo, error) {
	if d.DevicePath == "" {
		return DiskInfo{}, ErrNoDevice
	}
	log := m.logger.With(zap.String(logging.FieldDevice, d.DevicePath))

	info := DiskInfo{
		Model:          Unknown,
		Serial:         Unknown,
		PartitionTable: Unknown,
		SmartStatus:    map[string]string{},
	}

	cmd := []string{"lsblk", "-dno", "MODEL,SERIAL", d.DevicePath}
	if res, err := m.runner.Run(ctx, cmd); err != nil {
		log.Warn("failed to read model and serial",
			zap.String(logging.FieldCode, CodeInfo),
			zap.Error(commandFailure(CodeInfo, cmd, res, err)))
	} else {
		info.Model, info.Serial = splitModelSerial(res.Stdout)
	}

	cmd = []string{"blkid", "-o", "value", "-s", "PTTYPE", d.DevicePath}
	if res, err := m.runner.Run(ctx, cmd); err != nil {
		log.Warn("failed to read partition table type",
			zap.String(logging.FieldCode, CodeInfo),
			zap.Error(commandFailure(CodeInfo, cmd, res, err)))
	} else if pt := strings.TrimSpace(res.Stdout); pt != "" {
		info.PartitionTable = pt
	}

	cmd = []string{"smartctl", "-i", "-H", "-c", "-A", d.DevicePath}
	res, err := m.runner.RunCombined(ctx, cmd)
	switch {
	case res == nil || res.ExitCode < 0 || res.ExitCode&smartctlFatalBits != 0:
		log.Error("failed to read SMART status",
			zap.String(logging.FieldCode, CodeSmart),
			zap.Error(commandFailure(CodeSmart, cmd, res, err)))
	default:
		if res.ExitCode != 0 {
			log.Warn("smartctl reported disk problems", zap.Int("exit_code", res.ExitCode))
		}
		info.SmartStatus = ParseSmartStatus(res.Stdout)
	}
	info.Smart = DecodeSmartSummary(info.SmartStatus)

	return info, nil
}

// splitModelSerial splits "lsblk -dno MODEL,SERIAL" output: the last field is
// the serial and everything before it the model, which may contain spaces.
func splitModelSerial(out string) (model, serial string) {
	fields := strings.Fields(out)
	switch len(fields) {
	case 0:
		return Unknown, Unknown
	case 1:
		return fields[0], Unknown
	default:
		return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
	}
}
