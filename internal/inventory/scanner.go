// Package inventory discovers image files on disk and indexes them by
// content hash for matching and deduplication.
package inventory

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blerta-dev/farmakit/internal/model"
)

// imageExts are the file extensions treated as images, compared
// case-insensitively.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// IsImageFile reports whether the filename carries an image extension.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Scan lists image files in each directory (flat, one level, no descent
// into subdirectories) and hashes their contents. A missing directory
// contributes zero assets; an unreadable file is logged and skipped. The
// returned order is directory order, then directory-listing order within
// each, which downstream matching relies on for determinism.
func Scan(ctx context.Context, dirs []string) ([]model.ImageAsset, error) {
	var assets []model.ImageAsset

	for _, dir := range dirs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			// Not yet populated, not a failure.
			slog.Debug("Image directory does not exist, skipping", "dir", dir)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read image directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !IsImageFile(entry.Name()) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			hash, hashErr := HashFile(path)
			if hashErr != nil {
				slog.Warn("Skipping unreadable image file", "path", path, "error", hashErr)
				continue
			}

			assets = append(assets, model.ImageAsset{
				Filename: entry.Name(),
				Path:     path,
				Hash:     hash,
			})
		}
	}

	return assets, nil
}

// HashFile computes the sha256 digest of the file's raw bytes.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// DuplicateGroups returns the assets that share a content hash with at
// least one other asset, grouped by hash.
func DuplicateGroups(assets []model.ImageAsset) map[string][]model.ImageAsset {
	byHash := make(map[string][]model.ImageAsset)
	for _, a := range assets {
		byHash[a.Hash] = append(byHash[a.Hash], a)
	}

	groups := make(map[string][]model.ImageAsset)
	for hash, group := range byHash {
		if len(group) > 1 {
			groups[hash] = group
		}
	}
	return groups
}
