package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
)

// CopyFiles copies files one at a time into dest, keeping their base names.
// The destination is created if missing and checked for free space first.
// Existing names get a " (n)" suffix instead of being overwritten. Mode and
// modification time are preserved when configured, and each copy is verified
// when verify_after_copy is set. Copying stops at the first failure; the
// results gathered so far are returned with the error.
func (h *Handler) CopyFiles(ctx context.Context, files []File, dest string, progress ProgressFunc) ([]CopyResult, error) {
	results := make([]CopyResult, 0, len(files))
	if progress == nil {
		progress = func(Progress) {}
	}

	if err := h.fs.EnsureDirs(dest); err != nil {
		fe := newFileError(CodeCopy, dest, err, "failed to create destination %s", dest)
		h.logError(fe)
		return results, fe
	}

	var total int64
	for _, f := range files {
		if info, err := h.fs.Stat(f.Path); err == nil {
			total += info.Size()
		} else {
			total += f.Size
		}
	}

	if free, err := h.fs.FreeSpace(dest); err != nil {
		h.logger.Warn("could not determine free space", zap.String(logging.FieldPath, dest), zap.Error(err))
	} else if total > 0 && uint64(total) > free {
		space := &InsufficientSpaceError{Destination: dest, Needed: uint64(total), Available: free}
		fe := newFileError(CodeCopy, dest, space, "destination too small")
		h.logError(fe)
		return results, fe
	}

	p := Progress{FilesTotal: len(files), BytesTotal: total}
	progress(p)

	buf := make([]byte, h.cfg.ChunkSize)
	for i := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := h.copyOne(ctx, files[i], dest, buf)
		results = append(results, res)
		if err != nil {
			return results, err
		}

		files[i].Status = StatusCopied
		if res.Verified {
			files[i].Status = StatusVerified
			files[i].Hash = res.SourceHash
		}

		p.FilesDone++
		p.BytesDone += res.Bytes
		p.Current = files[i].Path
		progress(p)
	}

	h.logger.Debug("copy finished", zap.String(logging.FieldPath, dest), zap.Int("files", len(results)))
	return results, nil
}

func (h *Handler) copyOne(ctx context.Context, f File, dest string, buf []byte) (CopyResult, error) {
	res := CopyResult{Source: f.Path}

	fail := func(cause error, format string, args ...any) (CopyResult, error) {
		fe := newFileError(CodeCopy, f.Path, cause, format, args...)
		h.logError(fe)
		res.Err = fe
		return res, fe
	}

	info, err := h.fs.Stat(f.Path)
	if err != nil {
		return fail(err, "source %s is not accessible", f.Path)
	}
	if !info.Mode().IsRegular() {
		return fail(nil, "source %s is not a regular file", f.Path)
	}

	target, err := h.uniqueDestination(dest, filepath.Base(f.Path))
	if err != nil {
		return fail(err, "failed to choose a destination name for %s", f.Path)
	}
	res.Destination = target

	src, err := h.fs.Open(f.Path)
	if err != nil {
		return fail(err, "failed to open %s", f.Path)
	}
	written, err := h.fs.WriteStreamAtomic(target, src, info.Mode().Perm(), buf)
	src.Close()
	res.Bytes = written
	if err != nil {
		return fail(err, "failed to copy %s to %s", f.Path, target)
	}

	if h.cfg.PreserveMetadata {
		if err := h.fs.Chtimes(target, info.ModTime(), info.ModTime()); err != nil {
			h.logger.Warn("failed to preserve modification time", zap.String(logging.FieldPath, target), zap.Error(err))
		}
	}

	if h.cfg.VerifyAfterCopy {
		srcHash, dstHash, ok, err := h.verify(ctx, f.Path, target)
		res.SourceHash, res.DestHash = srcHash, dstHash
		if err != nil {
			res.Err = err
			return res, err
		}
		if !ok {
			fe := newFileError(CodeVerify, f.Path, nil, "copy of %s does not match the source", f.Path)
			h.logError(fe)
			res.Err = fe
			return res, fe
		}
		res.Verified = true
	}

	return res, nil
}

// uniqueDestination returns dest/name, or "name (n).ext" with the smallest free n.
func (h *Handler) uniqueDestination(dest, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// Dotfiles such as ".bashrc" have no stem; number after the whole name.
		stem, ext = name, ""
	}

	candidate := filepath.Join(dest, name)
	for n := 1; ; n++ {
		_, err := h.fs.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		if n > 10000 {
			return "", fmt.Errorf("too many files named %s in %s", name, dest)
		}
		candidate = filepath.Join(dest, fmt.Sprintf("%s (%d)%s", stem, n, ext))
	}
}
