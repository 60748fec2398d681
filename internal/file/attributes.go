package file

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
)

// GetFileAttributes reads timestamps, permissions and owner of a file.
// Linux exposes no portable birth time, so the inode change time stands in for creation.
// On failure every field is Unknown and a FILE_004 error is returned.
func (h *Handler) GetFileAttributes(f File) (FileAttributes, error) {
	info, err := h.fs.Stat(f.Path)
	if err != nil {
		fe := newFileError(CodeAttributes, f.Path, err, "failed to read attributes of %s", f.Path)
		h.logError(fe)
		return unknownAttributes(), fe
	}

	attrs := FileAttributes{
		CreationTime: Unknown,
		ModifiedTime: info.ModTime().Local().Format(TimeLayout),
		Permissions:  fmt.Sprintf("0o%o", info.Mode().Perm()),
		Owner:        h.fs.OwnerName(info),
		IsHidden:     strings.HasPrefix(filepath.Base(f.Path), "."),
	}
	if ctime := h.fs.ChangeTime(info); !ctime.IsZero() {
		attrs.CreationTime = ctime.Local().Format(TimeLayout)
	}
	if attrs.Owner == "" {
		attrs.Owner = Unknown
	}

	h.logger.Debug("read file attributes", zap.String(logging.FieldPath, f.Path))
	return attrs, nil
}
