package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
)

// =============================================================================
// Supported File Types
// =============================================================================

// imageExts contains the extensions of files eligible for organizing.
// Matching is case-insensitive.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// isEligibleImage reports whether a filename's extension is on the
// allow-list.
func isEligibleImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// =============================================================================
// Placement Results
// =============================================================================

// PlaceStatus classifies the outcome of placing one source file.
type PlaceStatus int

const (
	// StatusPlaced means the file was copied to its destination and the
	// source was removed.
	StatusPlaced PlaceStatus = iota
	// StatusSkippedDuplicate means the destination directory already held a
	// byte-identical file; the source was left in place.
	StatusSkippedDuplicate
	// StatusSkippedNoDate means no recognized metadata date field was
	// populated; the source was left untouched.
	StatusSkippedNoDate
	// StatusSkippedInvalidDate means the metadata date string did not match
	// the expected pattern; the source was left untouched.
	StatusSkippedInvalidDate
	// StatusFailed means an unexpected I/O error occurred; the file was left
	// in whatever partial state resulted (no rollback).
	StatusFailed
)

// PlacementResult records the outcome of the placement engine for one file.
type PlacementResult struct {
	Status       PlaceStatus
	SrcPath      string
	DestPath     string // set when Status == StatusPlaced
	ExistingPath string // set when Status == StatusSkippedDuplicate
	CaptureDate  time.Time
	Err          error // set when Status == StatusFailed
}

// =============================================================================
// File Placement Engine
// =============================================================================

// dateExtractor returns the raw metadata date string for a file, or
// ok=false when the file carries none. Production callers pass exifRawDate;
// tests pass lookups.
type dateExtractor func(path string) (string, bool)

// placeFile runs the full placement sequence for one eligible source file:
// date extraction, destination naming, directory creation, timestamp
// adjustment, copy, and source removal. In dry-run mode no filesystem write
// is performed; the destination is probed read-only.
//
// The source's access time is set to now and its modification time to the
// capture date before the copy, so the copy inherits the adjusted
// timestamps. This ordering is deliberate.
//
// A failure after the copy but before the source removal leaves both files
// in place; there is no rollback. The result is reported and the run moves
// on to the next file.
func placeFile(extract dateExtractor, srcPath, destRoot string, dryRun bool) PlacementResult {
	raw, ok := extract(srcPath)
	if !ok {
		return PlacementResult{Status: StatusSkippedNoDate, SrcPath: srcPath}
	}

	spec, err := parseCaptureDate(raw)
	if err != nil {
		log.Debugf("%s: %v", srcPath, err)
		return PlacementResult{Status: StatusSkippedInvalidDate, SrcPath: srcPath}
	}

	destDir := filepath.Join(destRoot, spec.Year, spec.Year+"-"+spec.Month)
	if !dryRun {
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return failed(srcPath, spec, fmt.Errorf("create %s: %w", destDir, err))
		}
		if err := os.Chtimes(srcPath, time.Now(), spec.Stamp); err != nil {
			return failed(srcPath, spec, fmt.Errorf("adjust timestamps of %s: %w", srcPath, err))
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(srcPath), "."))
	destPath, existing, err := resolveDestination(destDir, spec.Base, ext, srcPath)
	if err != nil {
		return failed(srcPath, spec, err)
	}
	if existing != "" {
		return PlacementResult{
			Status:       StatusSkippedDuplicate,
			SrcPath:      srcPath,
			ExistingPath: existing,
			CaptureDate:  spec.Stamp,
		}
	}

	if dryRun {
		return PlacementResult{
			Status:      StatusPlaced,
			SrcPath:     srcPath,
			DestPath:    destPath,
			CaptureDate: spec.Stamp,
		}
	}

	if err := copyFile(srcPath, destPath); err != nil {
		return failed(srcPath, spec, err)
	}

	// The copy is confirmed; only now may the source be removed.
	if err := os.Remove(srcPath); err != nil {
		return failed(srcPath, spec, fmt.Errorf("remove source %s (copy at %s is intact): %w", srcPath, destPath, err))
	}

	return PlacementResult{
		Status:      StatusPlaced,
		SrcPath:     srcPath,
		DestPath:    destPath,
		CaptureDate: spec.Stamp,
	}
}

func failed(srcPath string, spec DestinationSpec, err error) PlacementResult {
	return PlacementResult{
		Status:      StatusFailed,
		SrcPath:     srcPath,
		CaptureDate: spec.Stamp,
		Err:         err,
	}
}

// =============================================================================
// Traversal Driver
// =============================================================================

// Summary aggregates the per-file outcomes of one run.
type Summary struct {
	Placed      []PlacementResult
	Duplicates  int
	NoDate      int
	InvalidDate int
	Failed      int
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return len(s.Placed) + s.Duplicates + s.NoDate + s.InvalidDate + s.Failed
}

// findEligibleFiles walks the source root and returns paths to all regular
// files whose extension is on the allow-list, in walk order.
func findEligibleFiles(srcRoot string) ([]string, error) {
	var files []string

	err := filepath.Walk(srcRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warnf("walk %s: %v", path, err)
			return nil // keep walking
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if isEligibleImage(info.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// organizeTree walks srcRoot and runs the placement engine on every
// eligible file, one at a time. No per-file error terminates the run.
func organizeTree(extract dateExtractor, srcRoot, destRoot string, dryRun, verbose bool) (Summary, error) {
	files, err := findEligibleFiles(srcRoot)
	if err != nil {
		return Summary{}, fmt.Errorf("walk %s: %w", srcRoot, err)
	}

	if len(files) == 0 {
		log.Info("no eligible image files found")
		return Summary{}, nil
	}
	log.Infof("found %d eligible files", len(files))

	// The bar writes to stderr; per-file detail moves to debug level so the
	// two don't fight over the terminal.
	var bar *progressbar.ProgressBar
	if !verbose {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("organizing"),
			progressbar.OptionClearOnFinish(),
		)
	}

	var sum Summary
	for _, src := range files {
		res := placeFile(extract, src, destRoot, dryRun)
		recordResult(&sum, res, dryRun)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return sum, nil
}

func recordResult(sum *Summary, res PlacementResult, dryRun bool) {
	switch res.Status {
	case StatusPlaced:
		sum.Placed = append(sum.Placed, res)
		if dryRun {
			log.Debugf("would place %s -> %s", res.SrcPath, res.DestPath)
		} else {
			log.Debugf("placed %s -> %s", res.SrcPath, res.DestPath)
		}
	case StatusSkippedDuplicate:
		sum.Duplicates++
		log.Warnf("duplicate: %s matches existing %s, skipping", res.SrcPath, res.ExistingPath)
	case StatusSkippedNoDate:
		sum.NoDate++
		log.Warnf("no capture date in %s, skipping", res.SrcPath)
	case StatusSkippedInvalidDate:
		sum.InvalidDate++
		log.Warnf("invalid capture date in %s, skipping", res.SrcPath)
	case StatusFailed:
		sum.Failed++
		log.Errorf("failed to place %s: %v", res.SrcPath, res.Err)
	}
}
