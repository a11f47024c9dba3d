// Package metacache stores derived facts about image files in a BoltDB
// file so repeated runs over large directories skip re-decoding headers.
// An entry is only trusted while the file's size and modification time
// still match what was recorded.
package metacache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"imgmanage/internal/logging"
)

const (
	// DefaultFileName is used when the cache path names a directory.
	DefaultFileName = "imgmanage_meta.db"
	// FactsBucket maps an absolute image path to its Entry.
	FactsBucket = "Facts"
)

// Entry is the cached description of one file.
type Entry struct {
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
	Width   int       `json:"w"`
	Height  int       `json:"h"`
	Mime    string    `json:"mime"`
}

// Cache wraps the database handle.
type Cache struct {
	db  *bolt.DB
	log *logging.Logger
}

// Open creates or opens the cache at path. A directory path gets
// DefaultFileName inside it.
func Open(path string, log *logging.Logger) (*Cache, error) {
	if log == nil {
		log = logging.Nop()
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory for %s: %w", path, err)
	}
	log.Debug("using metadata cache", "path", path)

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(FactsBucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", FactsBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db, log: log}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func key(path string) []byte {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return []byte(path)
}

// Lookup returns the entry for path if one exists and was recorded for a
// file of the given size and modification time.
func (c *Cache) Lookup(path string, size int64, modTime time.Time) (Entry, bool) {
	var e Entry
	found := false
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(FactsBucket)).Get(key(path))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		c.log.Warn("cache entry unreadable", "path", path, "error", err)
		return Entry{}, false
	}
	if !found {
		c.log.Trace("cache miss", "path", path)
		return Entry{}, false
	}
	if e.Size != size || !e.ModTime.Equal(modTime) {
		c.log.Debug("cache entry stale", "path", path)
		return Entry{}, false
	}
	c.log.Trace("cache hit", "path", path)
	return e, true
}

// Store records e for path, replacing any previous entry.
func (c *Cache) Store(path string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry for %s: %w", path, err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(FactsBucket)).Put(key(path), data)
	})
}

// Forget removes the entry for path.
func (c *Cache) Forget(path string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(FactsBucket)).Delete(key(path))
	})
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	_ = c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(FactsBucket)).Stats().KeyN
		return nil
	})
	return n
}
