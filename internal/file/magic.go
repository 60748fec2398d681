package file

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
)

// Signature is a file format recognised by its leading bytes.
type Signature struct {
	Format     string
	Magic      []byte
	Extensions []string
}

// signatures is checked in order; the first matching prefix wins.
var signatures = []Signature{
	{Format: "PNG", Magic: []byte("\x89PNG\r\n\x1a\n"), Extensions: []string{".png"}},
	{Format: "JPEG", Magic: []byte{0xFF, 0xD8, 0xFF}, Extensions: []string{".jpg", ".jpeg"}},
	{Format: "GIF", Magic: []byte("GIF87a"), Extensions: []string{".gif"}},
	{Format: "GIF", Magic: []byte("GIF89a"), Extensions: []string{".gif"}},
	{Format: "PDF", Magic: []byte("%PDF"), Extensions: []string{".pdf"}},
	{Format: "ZIP", Magic: []byte("PK\x03\x04"), Extensions: zipExtensions},
	{Format: "ZIP", Magic: []byte("PK\x05\x06"), Extensions: zipExtensions},
	{Format: "ZIP", Magic: []byte("PK\x07\x08"), Extensions: zipExtensions},
}

// Office documents, Java archives and e-books are zip containers.
var zipExtensions = []string{".zip", ".docx", ".xlsx", ".pptx", ".jar", ".apk", ".odt", ".ods", ".odp", ".epub"}

// DetectSignature returns the format whose magic number prefixes header.
func DetectSignature(header []byte) (Signature, bool) {
	for _, sig := range signatures {
		if bytes.HasPrefix(header, sig.Magic) {
			return sig, true
		}
	}
	return Signature{}, false
}

// Accepts reports whether path's extension, case-insensitively, is valid for the format.
func (s Signature) Accepts(path string) bool {
	return slices.Contains(s.Extensions, strings.ToLower(filepath.Ext(path)))
}
