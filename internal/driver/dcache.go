package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rlint/internal/diag"
	"rlint/internal/source"
)

// Increment when the CachePayload format changes.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash, the cache key material.
type Digest = [32]byte

// DiskCache persists per-file check results across runs, keyed by a digest
// of the file content, the effective rule configuration, and the cross-file
// index. Any of the three changing invalidates the entry. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiag is the serialized form of one diagnostic.
type CachedDiag struct {
	Rule       string
	Severity   uint8
	Message    string
	Suggestion string
	Start      uint32
	End        uint32
	Row        uint32
	Col        uint32
	HasFix     bool
	FixContent string
	FixStart   uint32
	FixEnd     uint32
	FixSkip    bool
}

// CachePayload is one cache entry.
type CachePayload struct {
	Schema uint16
	Path   string
	Diags  []CachedDiag
}

// OpenDiskCache initializes the cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, atomically replacing any old entry.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // gone already when the rename won

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close() //nolint:errcheck,gosec // encode error wins
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a schema mismatch is a miss, not
// an error.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey combines the inputs a check result depends on.
func cacheKey(content, cfg, index Digest) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write(cfg[:])
	h.Write(index[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func toCached(diags []diag.Diagnostic) []CachedDiag {
	out := make([]CachedDiag, 0, len(diags))
	for _, d := range diags {
		cd := CachedDiag{
			Rule:       string(d.Rule),
			Severity:   uint8(d.Severity),
			Message:    d.Message,
			Suggestion: d.Suggestion,
			Start:      d.Primary.Start,
			End:        d.Primary.End,
			Row:        d.Row,
			Col:        d.Col,
		}
		if d.Fix != nil {
			cd.HasFix = true
			cd.FixContent = d.Fix.Content
			cd.FixStart = d.Fix.Start
			cd.FixEnd = d.Fix.End
			cd.FixSkip = d.Fix.ToSkip
		}
		out = append(out, cd)
	}
	return out
}

func fromCached(cached []CachedDiag) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(cached))
	for _, cd := range cached {
		d := diag.Diagnostic{
			Rule:       diag.RuleName(cd.Rule),
			Severity:   diag.Severity(cd.Severity),
			Message:    cd.Message,
			Suggestion: cd.Suggestion,
			Primary:    source.Span{Start: cd.Start, End: cd.End},
			Row:        cd.Row,
			Col:        cd.Col,
		}
		if cd.HasFix {
			d.Fix = &diag.Fix{
				Content: cd.FixContent,
				Start:   cd.FixStart,
				End:     cd.FixEnd,
				ToSkip:  cd.FixSkip,
			}
		}
		out = append(out, d)
	}
	return out
}
