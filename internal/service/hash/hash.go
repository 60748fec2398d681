package hash

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	stdhash "hash"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Algorithm names accepted by New.
const (
	MD5    = "md5"
	SHA256 = "sha256"
	XXH64  = "xxh64"
)

// Hasher computes streaming file digests with a fixed chunk size.
// Digests are cached by path, size and modification time so a file hashed
// during listing is not read again when it is verified after copy.
type Hasher struct {
	algorithm string
	chunkSize int

	mu    sync.RWMutex
	store map[string]cacheEntry
}

type cacheEntry struct {
	size    int64
	modTime time.Time
	digest  string
}

// New creates a Hasher. chunkSize below 1 falls back to 1 MiB.
func New(algorithm string, chunkSize int) (*Hasher, error) {
	if _, err := newDigest(algorithm); err != nil {
		return nil, err
	}
	if chunkSize < 1 {
		chunkSize = 1024 * 1024
	}
	return &Hasher{
		algorithm: algorithm,
		chunkSize: chunkSize,
		store:     make(map[string]cacheEntry),
	}, nil
}

// Algorithm returns the configured algorithm name.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

func newDigest(algorithm string) (stdhash.Hash, error) {
	switch algorithm {
	case MD5:
		return md5.New(), nil
	case SHA256:
		return sha256.New(), nil
	case XXH64:
		return xxhash.New(), nil
	default:
		return nil, &UnsupportedAlgorithmError{Algorithm: algorithm}
	}
}

// Reader hashes everything r yields, one chunk at a time.
// The context is checked between chunks so a cancelled copy stops hashing promptly.
func (h *Hasher) Reader(ctx context.Context, r io.Reader) (string, error) {
	digest, err := newDigest(h.algorithm)
	if err != nil {
		return "", err
	}

	buf := make([]byte, h.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := r.Read(buf)
		if n > 0 {
			digest.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &ReadError{Cause: err}
		}
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// File hashes the file at path, returning a cached digest when the file is unchanged.
func (h *Hasher) File(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	if digest, ok := h.get(path, info); ok {
		return digest, nil
	}

	digest, err := h.Reader(ctx, file)
	if err != nil {
		if readErr, ok := err.(*ReadError); ok {
			readErr.Path = path
		}
		return "", err
	}

	h.update(path, info, digest)
	return digest, nil
}

func (h *Hasher) get(path string, info os.FileInfo) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.store[path]
	if !ok || entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		return "", false
	}
	return entry.digest, true
}

func (h *Hasher) update(path string, info os.FileInfo, digest string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store[path] = cacheEntry{size: info.Size(), modTime: info.ModTime(), digest: digest}
}

// Forget drops the cached digest for path.
func (h *Hasher) Forget(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.store, path)
}

// Clear removes all cached digests.
func (h *Hasher) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store = make(map[string]cacheEntry)
}
