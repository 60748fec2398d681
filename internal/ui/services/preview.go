package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/dustin/go-humanize"
)

// FormatCommandDescription generates the status bar text for a pending command.
func FormatCommandDescription(name string, args map[string]string) string {
	device := args["device"]
	switch name {
	case "refresh":
		return "Detecting disks"
	case "mount":
		if device != "" {
			return fmt.Sprintf("Mounting %s", device)
		}
	case "unmount":
		if device != "" {
			return fmt.Sprintf("Unmounting %s", device)
		}
	case "check":
		if device != "" {
			return fmt.Sprintf("Checking %s", device)
		}
	case "info":
		if device != "" {
			return fmt.Sprintf("Reading SMART data from %s", device)
		}
	case "list":
		if root := args["root"]; root != "" {
			return fmt.Sprintf("Listing %s", root)
		}
	case "scan":
		return "Scanning for corruption"
	case "copy":
		if dest := args["dest"]; dest != "" {
			return fmt.Sprintf("Copying to %s", dest)
		}
	}
	return name
}

// RenderDiskPreview renders the details panel for the selected disk as Markdown.
// Status and info are optional and omitted when nil.
func RenderDiskPreview(d disk.Disk, status *disk.FilesystemStatus, info *disk.DiskInfo) string {
	if d.DevicePath == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("### %s\n\n", d.DevicePath))
	sb.WriteString(fmt.Sprintf("- Size: %s\n", humanize.IBytes(uint64(max(d.Size, 0)))))
	sb.WriteString(fmt.Sprintf("- Filesystem: %s\n", orUnknown(d.Filesystem)))
	if d.Mounted {
		sb.WriteString(fmt.Sprintf("- Mounted at `%s`\n", d.MountPoint))
	} else {
		sb.WriteString("- Not mounted\n")
	}

	if status != nil {
		sb.WriteString("\n")
		sb.WriteString(renderStatus(*status))
	}
	if info != nil {
		sb.WriteString("\n")
		sb.WriteString(renderInfo(*info))
	}
	return sb.String()
}

func renderStatus(s disk.FilesystemStatus) string {
	if s.IsConsistent {
		return fmt.Sprintf("**Filesystem OK**: %s\n", s.Details)
	}
	details := strings.TrimSpace(s.Details)
	return fmt.Sprintf("**Filesystem problems**\n\n```\n%s\n```\n", details)
}

func renderInfo(info disk.DiskInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("- Model: %s\n", orUnknown(info.Model)))
	sb.WriteString(fmt.Sprintf("- Serial: %s\n", orUnknown(info.Serial)))
	sb.WriteString(fmt.Sprintf("- Partition table: %s\n", orUnknown(info.PartitionTable)))
	sb.WriteString(fmt.Sprintf("- SMART health: %s\n", orUnknown(info.Smart.Health())))
	if info.Smart.PowerOnHours != "" {
		sb.WriteString(fmt.Sprintf("- Power on hours: %s\n", info.Smart.PowerOnHours))
	}
	return sb.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return disk.Unknown
	}
	return s
}
