package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// Destination Naming
// =============================================================================

// resolveDestination finds a free destination path for srcPath inside
// destDir, starting from "base.ext" and probing numeric suffixes
// ("base_1.ext", "base_2.ext", ...) while the candidate is taken.
//
// If an occupied candidate holds content identical to srcPath, probing
// stops and the existing path is returned as existingPath (duplicate-skip);
// destPath is empty in that case. Otherwise destPath is a path that did not
// exist at probe time. Existing distinct files are never overwritten.
func resolveDestination(destDir, base, ext, srcPath string) (destPath, existingPath string, err error) {
	candidate := filepath.Join(destDir, base+"."+ext)
	for counter := 1; ; counter++ {
		info, statErr := os.Stat(candidate)
		if os.IsNotExist(statErr) {
			return candidate, "", nil
		}
		if statErr != nil {
			return "", "", fmt.Errorf("stat %s: %w", candidate, statErr)
		}

		if info.Mode().IsRegular() {
			same, err := filesAreIdentical(candidate, srcPath)
			if err != nil {
				return "", "", err
			}
			if same {
				return "", candidate, nil
			}
		}

		candidate = filepath.Join(destDir, fmt.Sprintf("%s_%d.%s", base, counter, ext))
	}
}
