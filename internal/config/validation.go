package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// SupportedHashAlgorithms lists the values accepted for files.hash_algorithm.
var SupportedHashAlgorithms = []string{"md5", "sha256", "xxh64"}

// SupportedLogLevels lists the values accepted for log.level, case-insensitive.
var SupportedLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Disk validation
	if strings.TrimSpace(c.Disk.MountRoot) == "" {
		errs = append(errs, "disk.mount_root is required")
	} else if !filepath.IsAbs(c.Disk.MountRoot) {
		errs = append(errs, "disk.mount_root must be an absolute path")
	}
	if c.Disk.CommandTimeoutSeconds < 1 {
		errs = append(errs, "disk.command_timeout_seconds must be >= 1")
	}
	if c.Disk.MaxCommandOutputSize < 1 {
		errs = append(errs, "disk.max_command_output_size must be >= 1")
	}
	if c.Disk.GracefulShutdownMs < 1 {
		errs = append(errs, "disk.graceful_shutdown_ms must be >= 1")
	}

	// Files validation
	if !slices.Contains(SupportedHashAlgorithms, c.Files.HashAlgorithm) {
		errs = append(errs, fmt.Sprintf("files.hash_algorithm must be one of %v", SupportedHashAlgorithms))
	}
	if c.Files.ChunkSize < 1 {
		errs = append(errs, "files.chunk_size must be >= 1")
	}
	if c.Files.HeaderSampleSize < 8 {
		// The longest magic number (PNG) is 8 bytes.
		errs = append(errs, "files.header_sample_size must be >= 8")
	}

	// Log validation
	if !slices.Contains(SupportedLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Sprintf("log.level must be one of %v", SupportedLogLevels))
	}

	// UI validation
	if c.UI.TickIntervalMs < 1 {
		errs = append(errs, "ui.tick_interval_ms must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
