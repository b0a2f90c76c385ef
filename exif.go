package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register maker note parsers so vendor-specific EXIF blocks decode.
	exif.RegisterParsers(mknote.All...)
}

// =============================================================================
// Date Extraction
// =============================================================================

// exifTimeLayout is the date format used by EXIF date tags.
const exifTimeLayout = "2006:01:02 15:04:05"

// dateFields are the EXIF tags checked for a capture date, in priority
// order. The first populated tag wins.
var dateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// exifRawDate returns the raw capture-date string from a file's EXIF
// metadata, unparsed. Returns ok=false if the file has no EXIF block or
// none of the recognized date tags are populated. Read and decode failures
// are treated the same as absence; they never abort the run.
func exifRawDate(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("cannot open %s for metadata: %v", path, err)
		return "", false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		log.Debugf("no EXIF data in %s (%s): %v", path, sniffContainer(path), err)
		return "", false
	}

	for _, field := range dateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil || s == "" {
			continue
		}
		return s, true
	}

	return "", false
}

// sniffContainer detects the actual container format of a file, for
// diagnostics when EXIF decoding fails (e.g. a PNG carrying no metadata,
// or a mislabeled extension).
func sniffContainer(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "unknown"
	}
	return mt.String()
}

// =============================================================================
// Date Formatting
// =============================================================================

// DestinationSpec is derived from a parsed capture date and fully determines
// where a file lands and which timestamps it receives.
type DestinationSpec struct {
	Year  string    // 4-digit year, e.g. "2023"
	Month string    // 2-digit month, e.g. "05"
	Base  string    // compact sortable base filename, e.g. "20230514_103000"
	Stamp time.Time // modification time to apply to the file
}

// parseCaptureDate strictly parses a raw EXIF date string. The value is
// treated as naive local time; no timezone conversion is performed.
func parseCaptureDate(raw string) (DestinationSpec, error) {
	t, err := time.ParseInLocation(exifTimeLayout, raw, time.Local)
	if err != nil {
		return DestinationSpec{}, fmt.Errorf("date %q does not match %q: %w", raw, exifTimeLayout, err)
	}
	return DestinationSpec{
		Year:  t.Format("2006"),
		Month: t.Format("01"),
		Base:  t.Format("20060102_150405"),
		Stamp: t,
	}, nil
}
