package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/dustin/go-humanize"
)

// Session collects what a recovery session produced. Nil or empty sections are omitted.
type Session struct {
	GeneratedAt   time.Time
	Disks         []disk.Disk
	Disk          *disk.Disk
	Info          *disk.DiskInfo
	Check         *disk.FilesystemStatus
	FilesListed   int
	Copies        []file.CopyResult
	Problems      []file.FileError
	HashAlgorithm string
}

// Markdown renders the session as a Markdown document.
func Markdown(s Session) string {
	var b strings.Builder

	b.WriteString("# Recovery report\n\n")
	if !s.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated %s\n\n", s.GeneratedAt.Local().Format(file.TimeLayout))
	}

	if len(s.Disks) > 0 {
		b.WriteString("## Detected disks\n\n")
		b.WriteString("| Device | Size | Filesystem | Mounted | Health |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, d := range s.Disks {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(d.DevicePath), humanize.IBytes(uint64(max(d.Size, 0))), cell(d.Filesystem),
				mounted(d), cell(d.HealthStatus))
		}
		b.WriteString("\n")
	}

	if s.Disk != nil {
		fmt.Fprintf(&b, "## Disk %s\n\n", s.Disk.DevicePath)
		if s.Info != nil {
			fmt.Fprintf(&b, "- **Model:** %s\n", s.Info.Model)
			fmt.Fprintf(&b, "- **Serial:** %s\n", s.Info.Serial)
			fmt.Fprintf(&b, "- **Partition table:** %s\n", s.Info.PartitionTable)
			if health := s.Info.Smart.Health(); health != "" {
				fmt.Fprintf(&b, "- **SMART health:** %s\n", health)
			} else {
				b.WriteString("- **SMART health:** unavailable\n")
			}
			if s.Info.Smart.PowerOnHours != "" {
				fmt.Fprintf(&b, "- **Power on hours:** %s\n", s.Info.Smart.PowerOnHours)
			}
		}
		if s.Check != nil {
			if s.Check.IsConsistent {
				fmt.Fprintf(&b, "- **Filesystem check:** consistent\n")
			} else {
				fmt.Fprintf(&b, "- **Filesystem check:** problems found\n\n```\n%s\n```\n", strings.TrimSpace(s.Check.Details))
			}
		}
		b.WriteString("\n")
		if s.Info != nil && len(s.Info.SmartStatus) > 0 {
			b.WriteString("### SMART attributes\n\n| Key | Value |\n|---|---|\n")
			keys := make([]string, 0, len(s.Info.SmartStatus))
			for k := range s.Info.SmartStatus {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, "| %s | %s |\n", cell(k), cell(s.Info.SmartStatus[k]))
			}
			b.WriteString("\n")
		}
	}

	if s.FilesListed > 0 || len(s.Copies) > 0 {
		b.WriteString("## Copy summary\n\n")
		var bytes int64
		verified, failed := 0, 0
		for _, c := range s.Copies {
			bytes += c.Bytes
			if c.Verified {
				verified++
			}
			if c.Err != nil {
				failed++
			}
		}
		if s.FilesListed > 0 {
			fmt.Fprintf(&b, "- Files listed: %d\n", s.FilesListed)
		}
		fmt.Fprintf(&b, "- Files copied: %d (%s)\n", len(s.Copies)-failed, humanize.IBytes(uint64(max(bytes, 0))))
		if s.HashAlgorithm != "" {
			fmt.Fprintf(&b, "- Verified (%s): %d\n", s.HashAlgorithm, verified)
		} else {
			fmt.Fprintf(&b, "- Verified: %d\n", verified)
		}
		fmt.Fprintf(&b, "- Failed: %d\n\n", failed)

		if len(s.Copies) > 0 {
			b.WriteString("| Source | Destination | Size | Verified |\n|---|---|---|---|\n")
			for _, c := range s.Copies {
				status := "no"
				switch {
				case c.Err != nil:
					status = "failed"
				case c.Verified:
					status = "yes"
				}
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
					cell(c.Source), cell(c.Destination), humanize.IBytes(uint64(max(c.Bytes, 0))), status)
			}
			b.WriteString("\n")
		}
	}

	if len(s.Problems) > 0 {
		fmt.Fprintf(&b, "## Corrupted files (%d)\n\n| Code | File | Problem |\n|---|---|---|\n", len(s.Problems))
		for _, p := range s.Problems {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", p.Code, cell(p.Path), cell(p.Message))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func mounted(d disk.Disk) string {
	if !d.Mounted {
		return "no"
	}
	if d.MountPoint != "" {
		return d.MountPoint
	}
	return "yes"
}

// cell escapes a value for a Markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
