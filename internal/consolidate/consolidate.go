// Package consolidate merges legacy image directories into one canonical
// directory, deduplicating by content hash, and repairs products that
// share a primary image.
package consolidate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/inventory"
)

// Report summarizes one consolidation run. Aliases maps each skipped
// source path to the canonical filename already holding the same bytes.
type Report struct {
	Aliases map[string]string
	Copied  int
	Skipped int
	Failed  int
}

// Consolidate copies every image from sourceDirs into canonicalDir,
// processing directories in the order given. Identity is the content hash,
// not the filename: bytes already present in the canonical directory (or
// copied earlier in the same run) are skipped and recorded as aliases, so
// re-running against an already-consolidated tree copies nothing. Name
// collisions between distinct images get a numeric suffix before the
// extension.
//
// An unusable canonical directory is fatal; everything else degrades to
// skip-and-count per file.
func Consolidate(ctx context.Context, sourceDirs []string, canonicalDir string) (*Report, error) {
	if err := os.MkdirAll(canonicalDir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCanonicalDirUnavailable, err)
	}

	// Index what the canonical directory already holds.
	existing, err := inventory.Scan(ctx, []string{canonicalDir})
	if err != nil {
		return nil, fmt.Errorf("failed to scan canonical directory: %w", err)
	}

	byHash := make(map[string]string, len(existing))
	names := make(map[string]bool, len(existing))
	for _, a := range existing {
		byHash[a.Hash] = a.Filename
		names[a.Filename] = true
	}

	report := &Report{Aliases: make(map[string]string)}

	for _, dir := range sourceDirs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if filepath.Clean(dir) == filepath.Clean(canonicalDir) {
			continue
		}

		entries, readErr := os.ReadDir(dir)
		if os.IsNotExist(readErr) {
			slog.Debug("Source directory does not exist, skipping", "dir", dir)
			continue
		}
		if readErr != nil {
			slog.Warn("Skipping unreadable source directory", "dir", dir, "error", readErr)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !inventory.IsImageFile(entry.Name()) {
				continue
			}

			src := filepath.Join(dir, entry.Name())
			hash, hashErr := inventory.HashFile(src)
			if hashErr != nil {
				slog.Warn("Skipping unreadable image file", "path", src, "error", hashErr)
				report.Failed++
				continue
			}

			if canonical, ok := byHash[hash]; ok {
				report.Aliases[src] = canonical
				report.Skipped++
				continue
			}

			target := uniqueName(names, entry.Name())
			if copyErr := copyFile(src, filepath.Join(canonicalDir, target)); copyErr != nil {
				slog.Warn("Failed to copy image", "path", src, "error", copyErr)
				report.Failed++
				continue
			}

			byHash[hash] = target
			names[target] = true
			report.Copied++
		}
	}

	return report, nil
}

// uniqueName resolves a filename collision by appending -1, -2, ... before
// the extension until the name is free.
func uniqueName(taken map[string]bool, name string) string {
	if !taken[name] {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if !taken[candidate] {
			return candidate
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}

	return out.Close()
}
