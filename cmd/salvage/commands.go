package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
	"github.com/Cyclone1070/salvage/internal/report"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Subcommand flags
var (
	hashOnList    bool
	copyFrom      string
	historyLimit  int
	reportDir     string
	reportRaw     bool
	reportStyle   string
	reportOutFile string
)

var errHistoryDisabled = errors.New("history is disabled in the config")

// addCommands registers every subcommand on root.
func addCommands(root *cobra.Command) {
	lsCmd.Flags().BoolVar(&hashOnList, "hash", false, "Compute a digest of every file")
	copyCmd.Flags().StringVar(&copyFrom, "from", "", "Copy every file under this directory")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "Maximum number of entries (0 for all)")
	reportCmd.Flags().StringVar(&reportDir, "dir", "", "Mounted directory to list and scan for the report")
	reportCmd.Flags().BoolVar(&reportRaw, "markdown", false, "Print raw Markdown instead of rendering it")
	reportCmd.Flags().StringVar(&reportStyle, "style", "", "Glamour style (dark, light, notty); empty detects the terminal")
	reportCmd.Flags().StringVar(&reportOutFile, "save", "", "Also write the Markdown report to this file")

	historyCmd.AddCommand(historyListCmd, historyExportCmd, historyClearCmd)
	root.AddCommand(devicesCmd, mountCmd, unmountCmd, checkCmd, infoCmd,
		lsCmd, scanCmd, copyCmd, verifyCmd, attrsCmd, accessCmd, historyCmd, reportCmd)
}

// requirePrivileges fails unless the process is root or sudo works without a password.
func requirePrivileges(cmd *cobra.Command, args []string) error {
	if !deps.App.CheckPrivileges(cmd.Context()) {
		return errors.New("root privileges are required (run as root or configure passwordless sudo)")
	}
	return nil
}

// useView routes application output for this subcommand to a cliView.
func useView(cmd *cobra.Command) *cliView {
	v := newCLIView(cmd.OutOrStdout())
	deps.App.SetView(v)
	return v
}

// selectDisk detects disks and returns the one at devicePath.
func selectDisk(ctx context.Context, devicePath string) (*disk.Disk, error) {
	d, ok := deps.App.HandleDiskSelection(ctx, devicePath)
	if !ok {
		return nil, fmt.Errorf("disk not found: %s", devicePath)
	}
	return d, nil
}

var devicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"disks"},
	Short:   "List block devices",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := useView(cmd)
		disks := deps.App.DetectAndUpdateDisks(cmd.Context())
		if err := v.Err(); err != nil {
			return err
		}
		return write(cmd.OutOrStdout(), output, diskListing(disks))
	},
}

func diskListing(disks []disk.Disk) listing {
	rows := make([][]string, 0, len(disks))
	for _, d := range disks {
		mp := ""
		if d.Mounted {
			mp = d.MountPoint
		}
		rows = append(rows, []string{
			d.DevicePath, humanize.IBytes(uint64(max(d.Size, 0))), dash(d.Filesystem), dash(mp), dash(d.HealthStatus),
		})
	}
	return listing{
		value:   disks,
		headers: []string{"DEVICE", "SIZE", "FILESYSTEM", "MOUNT POINT", "HEALTH"},
		rows:    rows,
	}
}

var mountCmd = &cobra.Command{
	Use:     "mount <device>",
	Short:   "Mount a device under the mount root",
	Args:    cobra.ExactArgs(1),
	PreRunE: requirePrivileges,
	RunE: func(cmd *cobra.Command, args []string) error {
		useView(cmd)
		d, err := selectDisk(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deps.App.MountDisk(cmd.Context(), d) {
			return fmt.Errorf("failed to mount %s", d.DevicePath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s mounted at %s\n", d.DevicePath, d.MountPoint)
		return nil
	},
}

var unmountCmd = &cobra.Command{
	Use:     "unmount <device>",
	Aliases: []string{"umount"},
	Short:   "Unmount a device",
	Args:    cobra.ExactArgs(1),
	PreRunE: requirePrivileges,
	RunE: func(cmd *cobra.Command, args []string) error {
		useView(cmd)
		d, err := selectDisk(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deps.App.UnmountDisk(cmd.Context(), d) {
			return fmt.Errorf("failed to unmount %s", d.DevicePath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s unmounted\n", d.DevicePath)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:     "check <device>",
	Short:   "Check a filesystem without repairing it",
	Args:    cobra.ExactArgs(1),
	PreRunE: requirePrivileges,
	RunE: func(cmd *cobra.Command, args []string) error {
		useView(cmd)
		d, err := selectDisk(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		status := deps.App.CheckDiskStatus(cmd.Context(), *d)
		verdict := "consistent"
		if !status.IsConsistent {
			verdict = "problems found"
		}
		err = write(cmd.OutOrStdout(), output, listing{
			value:   status,
			headers: []string{"DEVICE", "STATUS", "DETAILS"},
			rows:    [][]string{{d.DevicePath, verdict, dash(status.Details)}},
		})
		if err != nil {
			return err
		}
		if !status.IsConsistent {
			return fmt.Errorf("filesystem problems found on %s", d.DevicePath)
		}
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:     "info <device>",
	Short:   "Show model, serial, partition table and SMART health",
	Args:    cobra.ExactArgs(1),
	PreRunE: requirePrivileges,
	RunE: func(cmd *cobra.Command, args []string) error {
		useView(cmd)
		d, err := selectDisk(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		info, ok := deps.App.ShowDiskInfo(cmd.Context(), *d)
		if !ok {
			return fmt.Errorf("failed to read info for %s", d.DevicePath)
		}
		return write(cmd.OutOrStdout(), output, infoListing(info))
	},
}

func infoListing(info disk.DiskInfo) listing {
	return listing{
		value:   info,
		headers: []string{"FIELD", "VALUE"},
		rows: [][]string{
			{"Model", dash(info.Model)},
			{"Serial", dash(info.Serial)},
			{"Partition table", dash(info.PartitionTable)},
			{"SMART health", dash(info.Smart.Health())},
			{"Firmware", dash(info.Smart.Firmware)},
			{"Power on hours", dash(info.Smart.PowerOnHours)},
		},
	}
}

// listDir lists root through the application, failing when the listing failed.
func listDir(ctx context.Context, v *cliView, root string) ([]file.File, error) {
	files := deps.App.UpdateFileList(ctx, root)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

var lsCmd = &cobra.Command{
	Use:   "ls <dir>",
	Short: "List the files under a mounted directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := useView(cmd)
		files, err := listDir(cmd.Context(), v, args[0])
		if err != nil {
			return err
		}
		if hashOnList {
			for i := range files {
				if files[i].Hash != "" {
					continue
				}
				sum, err := deps.Files.HashFile(cmd.Context(), files[i].Path)
				if err != nil {
					files[i].Status = file.StatusUnreadable
					continue
				}
				files[i].Hash = sum
			}
		}
		return write(cmd.OutOrStdout(), output, fileListing(args[0], files))
	},
}

func fileListing(root string, files []file.File) listing {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			rel = f.Path
		}
		rows = append(rows, []string{rel, humanize.IBytes(uint64(max(f.Size, 0))), f.Status, dash(f.Hash)})
	}
	return listing{
		value:   files,
		headers: []string{"PATH", "SIZE", "STATUS", "HASH"},
		rows:    rows,
	}
}

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Find unreadable, empty or mislabelled files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := useView(cmd)
		files, err := listDir(cmd.Context(), v, args[0])
		if err != nil {
			return err
		}
		problems := deps.App.ScanCorruption(cmd.Context(), files)
		return write(cmd.OutOrStdout(), output, problemListing(problems))
	},
}

func problemListing(problems []file.FileError) listing {
	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, []string{string(p.Code), p.Path, p.Message})
	}
	return listing{
		value:   problems,
		headers: []string{"CODE", "PATH", "PROBLEM"},
		rows:    rows,
	}
}

var copyCmd = &cobra.Command{
	Use:   "copy <dest> [file...]",
	Short: "Copy files to a destination directory and verify them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := useView(cmd)
		dest := args[0]

		var files []file.File
		if copyFrom != "" {
			listed, err := listDir(cmd.Context(), v, copyFrom)
			if err != nil {
				return err
			}
			files = listed
		}
		for _, p := range args[1:] {
			info, err := deps.FS.Stat(p)
			if err != nil {
				return fmt.Errorf("cannot copy %s: %w", p, err)
			}
			if info.IsDir() {
				return fmt.Errorf("cannot copy %s: is a directory (use --from)", p)
			}
			files = append(files, file.File{Path: p, Size: info.Size(), Status: file.StatusNormal})
		}
		if len(files) == 0 {
			return errors.New("nothing to copy: name files or use --from")
		}

		if !deps.App.CopyFiles(cmd.Context(), files, dest) {
			if err := v.Err(); err != nil {
				return err
			}
			return errors.New("copy failed")
		}
		return write(cmd.OutOrStdout(), output, copyListing(deps.App.Report().Copies))
	},
}

func copyListing(results []file.CopyResult) listing {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Source, r.Destination, humanize.IBytes(uint64(max(r.Bytes, 0))), yesNo(r.Verified)})
	}
	return listing{
		value:   results,
		headers: []string{"SOURCE", "DESTINATION", "SIZE", "VERIFIED"},
		rows:    rows,
	}
}

var verifyCmd = &cobra.Command{
	Use:   "verify <source> <copy>",
	Short: "Compare a copy against its source by size and digest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := deps.Files.VerifyCopy(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s does not match %s", args[1], args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s matches %s (%s)\n", args[1], args[0], deps.Files.HashAlgorithm())
		return nil
	},
}

var attrsCmd = &cobra.Command{
	Use:   "attrs <file>",
	Short: "Show timestamps, permissions and owner of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrs, err := deps.Files.GetFileAttributes(file.File{Path: args[0]})
		if err != nil {
			return err
		}
		return write(cmd.OutOrStdout(), output, listing{
			value:   attrs,
			headers: []string{"FIELD", "VALUE"},
			rows: [][]string{
				{"Created", attrs.CreationTime},
				{"Modified", attrs.ModifiedTime},
				{"Permissions", attrs.Permissions},
				{"Owner", attrs.Owner},
				{"Hidden", yesNo(attrs.IsHidden)},
			},
		})
	},
}

var accessCmd = &cobra.Command{
	Use:   "access <file>",
	Short: "Check that a file exists, is readable and is not locked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := deps.Files.CheckFileAccessibility(file.File{Path: args[0]}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is accessible\n", args[0])
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show, export or clear the operation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent history entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deps.History == nil {
			return errHistoryDisabled
		}
		entries, err := deps.History.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.Time.Local().Format(file.TimeLayout), e.Level, dash(e.Operation), dash(e.Target), e.Message,
			})
		}
		return write(cmd.OutOrStdout(), output, listing{
			value:   entries,
			headers: []string{"TIME", "LEVEL", "OP", "TARGET", "MESSAGE"},
			rows:    rows,
		})
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the history as log lines to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if deps.History == nil {
			return errHistoryDisabled
		}
		if len(args) == 0 {
			return deps.History.Export(cmd.Context(), cmd.OutOrStdout())
		}
		if err := deps.History.SaveLogs(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "history saved to %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deps.History == nil {
			return errHistoryDisabled
		}
		if err := deps.History.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:     "report <device>",
	Short:   "Collect disk health, filesystem state and file findings into a report",
	Args:    cobra.ExactArgs(1),
	PreRunE: requirePrivileges,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		v := useView(cmd)

		d, err := selectDisk(ctx, args[0])
		if err != nil {
			return err
		}
		deps.App.ShowDiskInfo(ctx, *d)
		deps.App.CheckDiskStatus(ctx, *d)

		if reportDir != "" {
			files, err := listDir(ctx, v, reportDir)
			if err != nil {
				return err
			}
			deps.App.ScanCorruption(ctx, files)
		}

		md := report.Markdown(deps.App.Report())
		if reportOutFile != "" {
			if err := os.WriteFile(reportOutFile, []byte(md), 0o644); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
		}
		if reportRaw {
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		}
		rendered, err := report.Render(md, terminalWidth(), reportStyle)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
		return err
	},
}

// terminalWidth reads $COLUMNS, falling back to 80.
func terminalWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 80
}
