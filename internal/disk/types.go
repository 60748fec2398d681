package disk

// Disk is a block device reported by lsblk.
type Disk struct {
	DevicePath   string `json:"device_path" yaml:"device_path"`
	Size         int64  `json:"size" yaml:"size"`
	Filesystem   string `json:"filesystem" yaml:"filesystem"`
	Mounted      bool   `json:"mounted" yaml:"mounted"`
	MountPoint   string `json:"mount_point,omitempty" yaml:"mount_point,omitempty"`
	HealthStatus string `json:"health_status" yaml:"health_status"`
}

// FilesystemStatus is the outcome of a filesystem check.
type FilesystemStatus struct {
	IsConsistent bool   `json:"is_consistent" yaml:"is_consistent"`
	Details      string `json:"details" yaml:"details"`
}

// Unknown fills DiskInfo fields whose query failed.
const Unknown = "unknown"

// DiskInfo holds identification and SMART data for a device.
type DiskInfo struct {
	Model          string            `json:"model" yaml:"model"`
	Serial         string            `json:"serial" yaml:"serial"`
	PartitionTable string            `json:"partition_table" yaml:"partition_table"`
	SmartStatus    map[string]string `json:"smart_status" yaml:"smart_status"`
	Smart          SmartSummary      `json:"smart" yaml:"smart"`
}

// SmartSummary is a typed view of the most useful smartctl keys.
type SmartSummary struct {
	ModelFamily     string `mapstructure:"Model Family" json:"model_family,omitempty" yaml:"model_family,omitempty"`
	DeviceModel     string `mapstructure:"Device Model" json:"device_model,omitempty" yaml:"device_model,omitempty"`
	SerialNumber    string `mapstructure:"Serial Number" json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	Firmware        string `mapstructure:"Firmware Version" json:"firmware,omitempty" yaml:"firmware,omitempty"`
	Capacity        string `mapstructure:"User Capacity" json:"capacity,omitempty" yaml:"capacity,omitempty"`
	RotationRate    string `mapstructure:"Rotation Rate" json:"rotation_rate,omitempty" yaml:"rotation_rate,omitempty"`
	HealthResult    string `mapstructure:"SMART overall-health self-assessment test result" json:"health,omitempty" yaml:"health,omitempty"`
	NVMeHealth      string `mapstructure:"SMART Health Status" json:"nvme_health,omitempty" yaml:"nvme_health,omitempty"`
	SmartSupport    string `mapstructure:"SMART support is" json:"smart_support,omitempty" yaml:"smart_support,omitempty"`
	PowerOnHours    string `mapstructure:"Power On Hours" json:"power_on_hours,omitempty" yaml:"power_on_hours,omitempty"`
	PercentUsed     string `mapstructure:"Percentage Used" json:"percentage_used,omitempty" yaml:"percentage_used,omitempty"`
	MediaErrors     string `mapstructure:"Media and Data Integrity Errors" json:"media_errors,omitempty" yaml:"media_errors,omitempty"`
	CriticalWarning string `mapstructure:"Critical Warning" json:"critical_warning,omitempty" yaml:"critical_warning,omitempty"`
}

// Health returns whichever overall health verdict smartctl reported.
func (s SmartSummary) Health() string {
	if s.HealthResult != "" {
		return s.HealthResult
	}
	return s.NVMeHealth
}

// Passed reports whether smartctl's overall assessment is PASSED or OK.
func (s SmartSummary) Passed() bool {
	h := s.Health()
	return h == "PASSED" || h == "OK"
}
