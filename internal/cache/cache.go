// Package cache provides filesystem-based caching for transient video
// metadata such as titles and thumbnails.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/vidmark-cli/vidmark/filesystem"
	"github.com/vidmark-cli/vidmark/where"
)

const TTL = 7 * 24 * time.Hour

// GenerateKey derives a deterministic cache identifier from a video
// identifier and the kind of cached data (for example "oembed").
func GenerateKey(videoID, kind string) string {
	hash := sha256.Sum256([]byte(videoID + ":" + kind))
	return hex.EncodeToString(hash[:])
}

// Read retrieves and deserializes a cached object if it exists and has not
// exceeded its TTL.
func Read(key string, target interface{}) bool {
	path := filepath.Join(where.Cache(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	contents, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(contents, target) == nil
}

// Write persists a serializable object to the cache using an atomic file
// swap so a crash mid-write never leaves a truncated entry behind.
func Write(key string, data interface{}) error {
	path := filepath.Join(where.Cache(), key)
	tmpPath := path + ".tmp"

	contents, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().WriteFile(tmpPath, contents, 0644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage prunes expired cache entries in the background.
func CollectGarbage() {
	go func() {
		dir := where.Cache()
		_ = filesystem.API().Walk(dir, func(path string, info fs.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > TTL {
				_ = filesystem.API().Remove(path)
			}
			return nil
		})
	}()
}
