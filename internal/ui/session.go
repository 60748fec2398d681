package ui

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/ui/models"
)

// Serve performs UI commands against the session one at a time and refreshes
// the disk list on hot-plug events. It returns when ctx is cancelled or the
// command channel is closed. A nil events channel disables hot-plug refresh.
func Serve(ctx context.Context, s Session, status StatusWriter, commands <-chan UICommand, events <-chan disk.DeviceEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-commands:
			if !ok {
				return
			}
			phase, message := handleCommand(ctx, s, c)
			status.WriteStatus(phase, message)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.DetectAndUpdateDisks(ctx)
			status.WriteStatus(models.PhaseDone, fmt.Sprintf("%s %s", ev.DevicePath, ev.Kind))
		}
	}
}

// handleCommand runs one command and returns the status to display.
func handleCommand(ctx context.Context, s Session, c UICommand) (string, string) {
	switch c.Type {
	case CommandRefresh:
		disks := s.DetectAndUpdateDisks(ctx)
		return models.PhaseDone, fmt.Sprintf("%d disks detected", len(disks))

	case CommandList:
		files := s.UpdateFileList(ctx, c.Args["root"])
		return models.PhaseDone, fmt.Sprintf("%d files detected", len(files))

	case CommandScan:
		problems := s.ScanCorruption(ctx, c.Files)
		if len(problems) > 0 {
			return models.PhaseDone, fmt.Sprintf("%d corrupted files found", len(problems))
		}
		return models.PhaseDone, "no corrupted files found"

	case CommandCopy:
		if !s.CopyFiles(ctx, c.Files, c.Args["dest"]) {
			return models.PhaseError, "copy failed"
		}
		return models.PhaseDone, fmt.Sprintf("%d files copied to %s", len(c.Files), c.Args["dest"])

	case CommandMount, CommandUnmount, CommandCheck, CommandInfo:
	default:
		return models.PhaseError, fmt.Sprintf("unknown command: %s", c.Type)
	}

	device := c.Args["device"]
	d, ok := s.HandleDiskSelection(ctx, device)
	if !ok {
		return models.PhaseError, fmt.Sprintf("disk not found: %s", device)
	}

	switch c.Type {
	case CommandMount:
		if !s.MountDisk(ctx, d) {
			return models.PhaseError, fmt.Sprintf("failed to mount %s", device)
		}
		s.DetectAndUpdateDisks(ctx)
		files := s.UpdateFileList(ctx, d.MountPoint)
		return models.PhaseDone, fmt.Sprintf("%s mounted at %s, %d files", device, d.MountPoint, len(files))

	case CommandUnmount:
		if !s.UnmountDisk(ctx, d) {
			return models.PhaseError, fmt.Sprintf("failed to unmount %s", device)
		}
		s.DetectAndUpdateDisks(ctx)
		return models.PhaseDone, fmt.Sprintf("%s unmounted", device)

	case CommandCheck:
		status := s.CheckDiskStatus(ctx, *d)
		if !status.IsConsistent {
			return models.PhaseDone, fmt.Sprintf("filesystem problems found on %s", device)
		}
		return models.PhaseDone, fmt.Sprintf("%s is consistent", device)

	case CommandInfo:
		info, ok := s.ShowDiskInfo(ctx, *d)
		if !ok {
			return models.PhaseError, fmt.Sprintf("failed to read info for %s", device)
		}
		return models.PhaseDone, fmt.Sprintf("%s health: %s", device, orUnknown(info.Smart.Health()))
	}
	return models.PhaseError, fmt.Sprintf("unknown command: %s", c.Type)
}

func orUnknown(s string) string {
	if s == "" {
		return disk.Unknown
	}
	return s
}
