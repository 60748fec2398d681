package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Disk    DiskConfig    `json:"disk"`
	Files   FilesConfig   `json:"files"`
	Log     LogConfig     `json:"log"`
	History HistoryConfig `json:"history"`
	UI      UIConfig      `json:"ui"`
}

type DiskConfig struct {
	// Mounting
	MountRoot     string `json:"mount_root"`      // Default: /mnt
	ReadOnlyMount bool   `json:"read_only_mount"` // Default: true

	// External tools
	CommandTimeoutSeconds int   `json:"command_timeout_seconds"` // Default: 300 (fsck on a slow disk takes a while)
	MaxCommandOutputSize  int64 `json:"max_command_output_size"` // Default: 4 * 1024 * 1024 (4MB)
	GracefulShutdownMs    int   `json:"graceful_shutdown_ms"`    // Default: 2000
}

type FilesConfig struct {
	// Hashing
	HashAlgorithm string `json:"hash_algorithm"` // Default: md5 (md5, sha256, xxh64)
	ChunkSize     int    `json:"chunk_size"`     // Default: 1024 * 1024 (1MB)

	// Corruption detection
	HeaderSampleSize int `json:"header_sample_size"` // Default: 8

	// Listing
	Exclude    []string `json:"exclude"`      // gitignore syntax
	HashOnList bool     `json:"hash_on_list"` // Default: false

	// Copying
	VerifyAfterCopy  bool `json:"verify_after_copy"` // Default: true
	PreserveMetadata bool `json:"preserve_metadata"` // Default: true
}

type LogConfig struct {
	Level       string `json:"level"`       // Default: info
	Development bool   `json:"development"` // Default: true (console encoder)
}

type HistoryConfig struct {
	Enabled bool   `json:"enabled"` // Default: true
	Path    string `json:"path"`    // Default: "" (resolved to ~/.local/state/salvage/history.db)
}

type UIConfig struct {
	TickIntervalMs int  `json:"tick_interval_ms"` // Default: 300
	WatchDevices   bool `json:"watch_devices"`    // Default: true
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Disk: DiskConfig{
			MountRoot:             "/mnt",
			ReadOnlyMount:         true,
			CommandTimeoutSeconds: 300,
			MaxCommandOutputSize:  4 * 1024 * 1024,
			GracefulShutdownMs:    2000,
		},
		Files: FilesConfig{
			HashAlgorithm:    "md5",
			ChunkSize:        1024 * 1024,
			HeaderSampleSize: 8,
			Exclude: []string{
				"lost+found/",
				"$RECYCLE.BIN/",
				"System Volume Information/",
			},
			HashOnList:       false,
			VerifyAfterCopy:  true,
			PreserveMetadata: true,
		},
		Log: LogConfig{
			Level:       "info",
			Development: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		UI: UIConfig{
			TickIntervalMs: 300,
			WatchDevices:   true,
		},
	}
}
