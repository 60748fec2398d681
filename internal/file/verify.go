package file

import (
	"context"

	"github.com/Cyclone1070/salvage/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// VerifyCopy reports whether dst is an exact copy of src: sizes first, then
// streaming digests of both files computed concurrently.
// A missing file or a read failure returns false with a FILE_003 error.
func (h *Handler) VerifyCopy(ctx context.Context, src, dst string) (bool, error) {
	_, _, ok, err := h.verify(ctx, src, dst)
	return ok, err
}

func (h *Handler) verify(ctx context.Context, src, dst string) (srcHash, dstHash string, ok bool, err error) {
	srcInfo, err := h.fs.Stat(src)
	if err != nil {
		fe := newFileError(CodeVerify, src, err, "source file %s not found", src)
		h.logError(fe)
		return "", "", false, fe
	}
	dstInfo, err := h.fs.Stat(dst)
	if err != nil {
		fe := newFileError(CodeVerify, dst, err, "destination file %s not found", dst)
		h.logError(fe)
		return "", "", false, fe
	}

	if srcInfo.Size() != dstInfo.Size() {
		h.logger.Error("file size mismatch",
			zap.String(logging.FieldCode, string(CodeVerify)),
			zap.String(logging.FieldPath, src),
			zap.Int64("source_size", srcInfo.Size()),
			zap.Int64("dest_size", dstInfo.Size()))
		return "", "", false, nil
	}

	// The destination may reuse a path hashed earlier in this session.
	h.hasher.Forget(dst)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		srcHash, err = h.hasher.File(gctx, src)
		return err
	})
	g.Go(func() error {
		var err error
		dstHash, err = h.hasher.File(gctx, dst)
		return err
	})
	if err := g.Wait(); err != nil {
		fe := newFileError(CodeVerify, src, err, "failed to hash %s or %s", src, dst)
		h.logError(fe)
		return srcHash, dstHash, false, fe
	}

	if srcHash != dstHash {
		h.logger.Error("file hash mismatch",
			zap.String(logging.FieldCode, string(CodeVerify)),
			zap.String(logging.FieldPath, src),
			zap.String("source_hash", srcHash),
			zap.String("dest_hash", dstHash))
		return srcHash, dstHash, false, nil
	}

	h.logger.Debug("copy verified",
		zap.String(logging.FieldPath, src),
		zap.String("algorithm", h.hasher.Algorithm()),
		zap.String("hash", srcHash))
	return srcHash, dstHash, true, nil
}
