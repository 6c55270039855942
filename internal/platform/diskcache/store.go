package diskcache

import (
	"os"
	"path/filepath"
	"time"

	sonic "github.com/bytedance/sonic"
)

const metadataSuffix = ".meta.json"

// Metadata is the sidecar record written next to every cached blob. A data
// file without a readable sidecar, or the other way around, counts as absent.
type Metadata struct {
	LastUpdated string `json:"last_updated"`
	TTLHours    int    `json:"ttl_hours"`
}

// EntryInfo describes a cache entry for diagnostics.
type EntryInfo struct {
	LastUpdated   time.Time
	TTLHours      int
	Expired       bool
	TimeRemaining time.Duration
	SizeBytes     int64
}

// Store persists JSON-serializable blobs under a directory, one data file per
// key plus a metadata sidecar carrying the write time and TTL. Reads never
// fail loudly: missing, corrupt, or expired entries all surface as absent so
// callers always fall back to their "data not available" path.
type Store struct {
	dir      string
	ttlHours int
	now      func() time.Time
}

func NewStore(dir string, ttlHours int) (*Store, error) {
	if ttlHours < 1 {
		ttlHours = 4
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{
		dir:      dir,
		ttlHours: ttlHours,
		now:      time.Now,
	}, nil
}

func (s *Store) dataPath(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *Store) metadataPath(key string) string {
	return filepath.Join(s.dir, key+metadataSuffix)
}

// Set writes the blob and stamps fresh metadata. The two writes are not
// transactional: a crash in between leaves a data file without a sidecar,
// which the next read treats as an expired/absent entry.
func (s *Store) Set(key string, data any) error {
	if key == "" {
		return nil
	}

	encoded, err := sonic.ConfigDefault.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.dataPath(key), encoded, 0o644); err != nil {
		return err
	}

	meta := Metadata{
		LastUpdated: s.now().Format(time.RFC3339Nano),
		TTLHours:    s.ttlHours,
	}
	encodedMeta, err := sonic.ConfigDefault.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.metadataPath(key), encodedMeta, 0o644)
}

// Get decodes the cached blob into out. It reports false when the entry is
// missing, unreadable, or expired.
func (s *Store) Get(key string, out any) bool {
	if s.IsExpired(key) {
		return false
	}
	return s.read(key, out)
}

// GetStale behaves like Get but ignores expiry, returning whatever is on
// disk. Stale-but-present reference data beats no data at all.
func (s *Store) GetStale(key string, out any) bool {
	return s.read(key, out)
}

func (s *Store) read(key string, out any) bool {
	if key == "" {
		return false
	}

	raw, err := os.ReadFile(s.dataPath(key))
	if err != nil {
		return false
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return false
	}

	return true
}

// IsExpired reports true for entries that were never written, lost their
// metadata sidecar, carry an unparseable timestamp, or outlived their TTL.
func (s *Store) IsExpired(key string) bool {
	if key == "" {
		return true
	}
	if _, err := os.Stat(s.dataPath(key)); err != nil {
		return true
	}

	meta, ok := s.readMetadata(key)
	if !ok {
		return true
	}

	lastUpdated, err := time.Parse(time.RFC3339Nano, meta.LastUpdated)
	if err != nil {
		return true
	}

	expiry := lastUpdated.Add(time.Duration(meta.TTLHours) * time.Hour)
	return s.now().After(expiry)
}

// Invalidate removes both halves of the entry. Removing an absent entry is
// not an error.
func (s *Store) Invalidate(key string) error {
	if key == "" {
		return nil
	}

	if err := os.Remove(s.dataPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(s.metadataPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// Info describes the entry for diagnostics, or reports false when either
// half is missing.
func (s *Store) Info(key string) (EntryInfo, bool) {
	meta, ok := s.readMetadata(key)
	if !ok {
		return EntryInfo{}, false
	}

	stat, err := os.Stat(s.dataPath(key))
	if err != nil {
		return EntryInfo{}, false
	}

	lastUpdated, err := time.Parse(time.RFC3339Nano, meta.LastUpdated)
	if err != nil {
		return EntryInfo{}, false
	}

	expiry := lastUpdated.Add(time.Duration(meta.TTLHours) * time.Hour)
	remaining := expiry.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}

	return EntryInfo{
		LastUpdated:   lastUpdated,
		TTLHours:      meta.TTLHours,
		Expired:       s.now().After(expiry),
		TimeRemaining: remaining,
		SizeBytes:     stat.Size(),
	}, true
}

func (s *Store) readMetadata(key string) (Metadata, bool) {
	raw, err := os.ReadFile(s.metadataPath(key))
	if err != nil {
		return Metadata{}, false
	}

	var meta Metadata
	if err := sonic.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, false
	}

	return meta, true
}
