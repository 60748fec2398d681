package file

import (
	"context"
	iofs "io/fs"
	"path/filepath"
	"sort"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
)

// ListFiles walks root recursively and returns its regular files sorted by path.
// Entries that cannot be read are logged and skipped, as are paths matching the
// exclude patterns. Symbolic links are not followed. A missing root yields an
// empty list and a FILE_001 error.
func (h *Handler) ListFiles(ctx context.Context, root string) ([]File, error) {
	files := []File{}

	info, err := h.fs.Stat(root)
	if err != nil {
		fe := newFileError(CodeList, root, err, "path %s not found", root)
		h.logError(fe)
		return files, fe
	}
	if !info.IsDir() {
		fe := newFileError(CodeList, root, nil, "path %s is not a directory", root)
		h.logError(fe)
		return files, fe
	}

	err = h.fs.WalkDir(root, func(path string, d iofs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			h.logger.Warn("skipping unreadable entry", zap.String(logging.FieldPath, path), zap.Error(walkErr))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err == nil && h.exclude.ShouldIgnore(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			h.logger.Warn("failed to stat file", zap.String(logging.FieldPath, path), zap.Error(err))
			return nil
		}

		f := File{Path: path, Size: fi.Size(), Status: StatusNormal}
		if h.cfg.HashOnList {
			digest, err := h.hasher.File(ctx, path)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				h.logger.Warn("failed to hash file", zap.String(logging.FieldPath, path), zap.Error(err))
				f.Status = StatusUnreadable
			} else {
				f.Hash = digest
			}
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		fe := newFileError(CodeList, root, err, "failed to list %s", root)
		h.logError(fe)
		return []File{}, fe
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	h.logger.Debug("listed files", zap.String(logging.FieldPath, root), zap.Int("count", len(files)))
	return files, nil
}

// HashFile returns the streaming digest of a file.
func (h *Handler) HashFile(ctx context.Context, path string) (string, error) {
	return h.hasher.File(ctx, path)
}

func (h *Handler) logError(fe *FileError) {
	h.logger.Error(fe.Message,
		zap.String(logging.FieldCode, string(fe.Code)),
		zap.String(logging.FieldPath, fe.Path),
		zap.NamedError("error", fe.Cause))
}
