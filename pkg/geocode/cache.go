package geocode

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Cache maps a raw address string to its last resolution result. The key is
// deliberately the exact input string: variant formatting of the same
// physical address produces distinct entries and distinct provider calls, a
// known cost tradeoff kept in favor of predictable lookups.
type Cache map[string]Result

// Store persists a Cache as a single human-readable JSON document, rewritten
// wholesale on each save.
type Store struct {
	path string
}

// NewStore creates a Store for the given cache file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the cache document. A missing file yields an empty cache; an
// unreadable or corrupt file is logged and also yields an empty cache, so a
// bad document never aborts a run.
func (s *Store) Load() Cache {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.L().Warn("geocode: cache unreadable, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return Cache{}
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		zap.L().Warn("geocode: cache corrupt, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return Cache{}
	}

	zap.L().Info("geocode: cache loaded", zap.Int("entries", len(cache)))
	return cache
}

// Save writes the full cache document, creating missing parent directories.
func (s *Store) Save(cache Cache) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return eris.Wrap(err, "geocode: create cache dir")
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return eris.Wrap(err, "geocode: marshal cache")
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return eris.Wrap(err, "geocode: write cache")
	}
	return nil
}
