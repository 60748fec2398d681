package file

import (
	"errors"

	"github.com/Cyclone1070/salvage/internal/logging"
	"github.com/Cyclone1070/salvage/internal/service/fs"
	"go.uber.org/zap"
)

// CheckFileAccessibility reports whether the file exists, is readable by the
// current user and is not exclusively locked by another process.
// Any failure returns false with a FILE_005 error.
func (h *Handler) CheckFileAccessibility(f File) (bool, error) {
	if _, err := h.fs.Stat(f.Path); err != nil {
		fe := newFileError(CodeAccessibility, f.Path, err, "file %s not found", f.Path)
		h.logError(fe)
		return false, fe
	}

	if err := h.fs.Readable(f.Path); err != nil {
		fe := newFileError(CodeAccessibility, f.Path, err, "no read permission for %s", f.Path)
		h.logError(fe)
		return false, fe
	}

	if err := h.fs.TryLock(f.Path); err != nil {
		var locked *fs.LockedError
		msg := "failed to check lock on %s"
		if errors.As(err, &locked) {
			msg = "file %s is locked by another process"
		}
		fe := newFileError(CodeAccessibility, f.Path, err, msg, f.Path)
		h.logError(fe)
		return false, fe
	}

	h.logger.Debug("file is accessible", zap.String(logging.FieldPath, f.Path))
	return true, nil
}
