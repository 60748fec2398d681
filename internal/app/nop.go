package app

import (
	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/file"
)

// NopView discards every update.
type NopView struct{}

func (NopView) UpdateDiskList([]disk.Disk)                         {}
func (NopView) UpdateFileList([]file.File)                         {}
func (NopView) UpdateProgress(int, string)                         {}
func (NopView) ShowError(string)                                   {}
func (NopView) DisplayDiskStatus(disk.Disk, disk.FilesystemStatus) {}
func (NopView) DisplayDiskInfo(disk.Disk, disk.DiskInfo)           {}
