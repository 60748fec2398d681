package file

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
)

// HandleCorruptedFiles classifies each file and returns one FILE_006 error per problem found.
// A file is corrupted when it is missing, empty, carries a known magic number that
// disagrees with its extension, or cannot be read to the end. Files are updated in
// place: IsCorrupted and Status are set, and Hash is filled from the read pass.
func (h *Handler) HandleCorruptedFiles(ctx context.Context, files []File) []FileError {
	var problems []FileError

	report := func(f *File, fe *FileError) {
		f.IsCorrupted = true
		f.Status = StatusCorrupted
		problems = append(problems, *fe)
		h.logger.Warn(fe.Message,
			zap.String(logging.FieldCode, string(fe.Code)),
			zap.String(logging.FieldPath, fe.Path),
			zap.NamedError("error", fe.Cause))
	}

	for i := range files {
		if ctx.Err() != nil {
			break
		}
		f := &files[i]

		info, err := h.fs.Stat(f.Path)
		if err != nil {
			report(f, newFileError(CodeCorrupted, f.Path, err, "file %s not found", f.Path))
			continue
		}
		if info.Size() == 0 {
			report(f, newFileError(CodeCorrupted, f.Path, nil, "file %s is empty", f.Path))
			continue
		}

		header, err := h.fs.ReadHeader(f.Path, h.cfg.HeaderSampleSize)
		if err != nil {
			report(f, newFileError(CodeCorrupted, f.Path, err, "failed to read header of %s", f.Path))
			continue
		}
		if sig, ok := DetectSignature(header); ok && !sig.Accepts(f.Path) {
			report(f, newFileError(CodeCorrupted, f.Path, nil,
				"file %s has a %s signature but extension %q (expected %s)",
				f.Path, sig.Format, filepath.Ext(f.Path), strings.Join(sig.Extensions, ", ")))
		}

		// A full read surfaces unreadable sectors that the header check cannot.
		h.hasher.Forget(f.Path)
		digest, err := h.hasher.File(ctx, f.Path)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			report(f, newFileError(CodeCorrupted, f.Path, err, "failed to read %s", f.Path))
			continue
		}
		f.Hash = digest
		if !f.IsCorrupted && f.Status == "" {
			f.Status = StatusNormal
		}
	}

	h.logger.Debug("corruption scan finished", zap.Int("files", len(files)), zap.Int("problems", len(problems)))
	return problems
}
