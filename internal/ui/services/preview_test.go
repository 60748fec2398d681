package services

import (
	"testing"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommandDescription_Mount(t *testing.T) {
	result := FormatCommandDescription("mount", map[string]string{"device": "/dev/sdb1"})
	assert.Equal(t, "Mounting /dev/sdb1", result)
}

func TestFormatCommandDescription_Copy(t *testing.T) {
	result := FormatCommandDescription("copy", map[string]string{"dest": "/srv/recovered"})
	assert.Equal(t, "Copying to /srv/recovered", result)
}

func TestFormatCommandDescription_Refresh(t *testing.T) {
	assert.Equal(t, "Detecting disks", FormatCommandDescription("refresh", nil))
}

func TestFormatCommandDescription_UnknownCommand(t *testing.T) {
	assert.Equal(t, "mystery", FormatCommandDescription("mystery", map[string]string{}))
}

func TestFormatCommandDescription_MissingArgs(t *testing.T) {
	assert.Equal(t, "mount", FormatCommandDescription("mount", map[string]string{}))
}

func TestRenderDiskPreview_Basic(t *testing.T) {
	d := disk.Disk{DevicePath: "/dev/sdb1", Size: 2 << 30, Filesystem: "ext4", Mounted: true, MountPoint: "/mnt/sdb1"}

	result := RenderDiskPreview(d, nil, nil)

	assert.Contains(t, result, "### /dev/sdb1")
	assert.Contains(t, result, "2.0 GiB")
	assert.Contains(t, result, "Filesystem: ext4")
	assert.Contains(t, result, "Mounted at `/mnt/sdb1`")
	assert.NotContains(t, result, "SMART")
}

func TestRenderDiskPreview_StatusAndInfo(t *testing.T) {
	d := disk.Disk{DevicePath: "/dev/sda"}
	status := &disk.FilesystemStatus{IsConsistent: false, Details: "Inode 12 has illegal blocks\n"}
	info := &disk.DiskInfo{
		Model:          "WDC WD10EZEX",
		PartitionTable: "gpt",
		Smart:          disk.SmartSummary{HealthResult: "PASSED", PowerOnHours: "1234"},
	}

	result := RenderDiskPreview(d, status, info)

	assert.Contains(t, result, "Filesystem: unknown")
	assert.Contains(t, result, "Not mounted")
	assert.Contains(t, result, "**Filesystem problems**")
	assert.Contains(t, result, "Inode 12 has illegal blocks")
	assert.Contains(t, result, "Model: WDC WD10EZEX")
	assert.Contains(t, result, "Serial: unknown")
	assert.Contains(t, result, "SMART health: PASSED")
	assert.Contains(t, result, "Power on hours: 1234")
}

func TestRenderDiskPreview_NoDevice(t *testing.T) {
	assert.Empty(t, RenderDiskPreview(disk.Disk{}, nil, nil))
}

func TestRenderMarkdown_NilRenderer(t *testing.T) {
	out, err := RenderMarkdown("**bold**", 80, nil)
	require.NoError(t, err)
	assert.Equal(t, "**bold**", out)
}

func TestGlamourRenderer_PlainStyle(t *testing.T) {
	r := NewGlamourRendererWithStyle("notty")

	out, err := r.Render("# Help\n\nPress **m** to mount.", 60)

	require.NoError(t, err)
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "mount")
	assert.Len(t, r.renderers, 1)

	_, err = r.Render("again", 60)
	require.NoError(t, err)
	assert.Len(t, r.renderers, 1)
}
