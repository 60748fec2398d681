package file

// File status values.
const (
	StatusNormal     = "normal"
	StatusUnreadable = "unreadable"
	StatusCorrupted  = "corrupted"
	StatusCopied     = "copied"
	StatusVerified   = "verified"
)

// TimeLayout formats attribute timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Unknown fills attribute fields that could not be read.
const Unknown = "unknown"

// File is a regular file found on a mounted volume.
type File struct {
	Path        string          `json:"path" yaml:"path"`
	Size        int64           `json:"size" yaml:"size"`
	Hash        string          `json:"hash,omitempty" yaml:"hash,omitempty"`
	Status      string          `json:"status" yaml:"status"`
	IsCorrupted bool            `json:"is_corrupted" yaml:"is_corrupted"`
	Attributes  *FileAttributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// FileAttributes holds display-ready metadata of a file.
type FileAttributes struct {
	CreationTime string `json:"creation_time" yaml:"creation_time"`
	ModifiedTime string `json:"modified_time" yaml:"modified_time"`
	Permissions  string `json:"permissions" yaml:"permissions"`
	Owner        string `json:"owner" yaml:"owner"`
	IsHidden     bool   `json:"is_hidden" yaml:"is_hidden"`
}

func unknownAttributes() FileAttributes {
	return FileAttributes{
		CreationTime: Unknown,
		ModifiedTime: Unknown,
		Permissions:  Unknown,
		Owner:        Unknown,
	}
}

// CopyResult describes one copied file.
type CopyResult struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Bytes       int64  `json:"bytes" yaml:"bytes"`
	Verified    bool   `json:"verified" yaml:"verified"`
	SourceHash  string `json:"source_hash,omitempty" yaml:"source_hash,omitempty"`
	DestHash    string `json:"dest_hash,omitempty" yaml:"dest_hash,omitempty"`
	Err         error  `json:"-" yaml:"-"`
}

// Progress reports copy advancement after each file.
type Progress struct {
	FilesDone  int
	FilesTotal int
	BytesDone  int64
	BytesTotal int64
	Current    string
}

// Percent returns completion in the range 0-100, by bytes when known.
func (p Progress) Percent() float64 {
	if p.BytesTotal > 0 {
		return float64(p.BytesDone) / float64(p.BytesTotal) * 100
	}
	if p.FilesTotal > 0 {
		return float64(p.FilesDone) / float64(p.FilesTotal) * 100
	}
	return 100
}

// ProgressFunc receives copy progress. It is called from the copying goroutine.
type ProgressFunc func(Progress)
