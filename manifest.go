package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// =============================================================================
// Manifest
// =============================================================================

// manifestName is the CSV file maintained at the destination root when
// manifest tracking is requested.
const manifestName = "manifest.csv"

var manifestHeaders = []string{
	"filename",       // base filename at the destination
	"relative_path",  // path relative to the destination root
	"size_bytes",     // file size in bytes
	"capture_date",   // parsed EXIF capture date
	"content_digest", // MD5 digest of the placed file
	"organized_date", // when the file was placed
}

// updateManifest appends the placed files of a run to <destRoot>/manifest.csv,
// creating it if absent. Existing rows are preserved; rows are keyed by
// relative path and written sorted for stable diffs.
func updateManifest(destRoot string, placed []PlacementResult) error {
	path := filepath.Join(destRoot, manifestName)

	existing := make(map[string][]string)
	if f, err := os.Open(path); err == nil {
		records, readErr := csv.NewReader(f).ReadAll()
		f.Close()
		if readErr != nil {
			return fmt.Errorf("read manifest %s: %w", path, readErr)
		}
		for i, row := range records {
			if i == 0 {
				continue
			}
			// Rows from an older column layout cannot be reconciled with the
			// current headers; drop them rather than rewrite them misaligned.
			if len(row) != len(manifestHeaders) {
				log.Warnf("manifest: dropping row with %d columns (want %d): %v", len(row), len(manifestHeaders), row)
				continue
			}
			existing[row[1]] = row
		}
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	added := 0
	for _, res := range placed {
		rel, err := filepath.Rel(destRoot, res.DestPath)
		if err != nil {
			rel = res.DestPath
		}
		if _, ok := existing[rel]; ok {
			continue
		}

		info, err := os.Stat(res.DestPath)
		if err != nil {
			log.Warnf("manifest: stat %s: %v", res.DestPath, err)
			continue
		}
		digest, err := fileChecksum(res.DestPath)
		if err != nil {
			log.Warnf("manifest: %v", err)
			digest = ""
		}

		existing[rel] = []string{
			filepath.Base(res.DestPath),
			rel,
			fmt.Sprintf("%d", info.Size()),
			res.CaptureDate.Format("2006:01:02 15:04:05"),
			digest,
			now,
		}
		added++
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(manifestHeaders); err != nil {
		return err
	}

	keys := make([]string, 0, len(existing))
	for k := range existing {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.Write(existing[k]); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if added > 0 {
		log.Infof("added %d entries to %s", added, path)
	}
	return nil
}
