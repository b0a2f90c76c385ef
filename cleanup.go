package main

import (
	"os"
	"path/filepath"
)

// =============================================================================
// Source Cleanup
// =============================================================================

// cleanupEmptyDirs removes directories under root that were left empty
// after organizing. Removing a directory can empty its parent, so passes
// repeat until one removes nothing. The root itself is never removed.
func cleanupEmptyDirs(root string) int {
	removed := 0
	for {
		n := removeEmptyDirsPass(root)
		if n == 0 {
			return removed
		}
		removed += n
	}
}

func removeEmptyDirsPass(root string) int {
	var empty []string

	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == root || !info.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(path)
		if err == nil && len(entries) == 0 {
			empty = append(empty, path)
		}
		return nil
	})

	removed := 0
	for _, dir := range empty {
		if err := os.Remove(dir); err != nil {
			log.Warnf("cannot remove empty directory %s: %v", dir, err)
			continue
		}
		log.Debugf("removed empty directory %s", dir)
		removed++
	}
	return removed
}
