package file

import (
	"github.com/Cyclone1070/salvage/internal/config"
	"github.com/Cyclone1070/salvage/internal/service/ignore"
	"go.uber.org/zap"
)

// Handler lists, copies, verifies and classifies files on a mounted volume.
type Handler struct {
	fs      fileSystem
	hasher  hasher
	exclude excludeMatcher
	cfg     config.FilesConfig
	logger  *zap.Logger
}

// NewHandler creates a Handler with injected dependencies.
func NewHandler(fs fileSystem, hasher hasher, cfg *config.Config, logger *zap.Logger) *Handler {
	if fs == nil {
		panic("fs is required")
	}
	if hasher == nil {
		panic("hasher is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		fs:      fs,
		hasher:  hasher,
		exclude: ignore.NewMatcher(cfg.Files.Exclude),
		cfg:     cfg.Files,
		logger:  logger,
	}
}

// HashAlgorithm returns the digest algorithm used for verification.
func (h *Handler) HashAlgorithm() string {
	return h.hasher.Algorithm()
}
