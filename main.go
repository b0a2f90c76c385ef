// Photo Archiver - organizes images into a date-structured directory tree.
//
// The tool walks a source directory, reads each image's EXIF capture date,
// and places the file at <dest>/<YYYY>/<YYYY>-<MM>/<YYYYMMDD_HHMMSS>.<ext>.
// Files whose content already exists at the destination are skipped; name
// collisions between distinct files get a numeric suffix. Sources are
// removed only after a successful copy.
//
// Usage:
//
//	photo-archiver [flags] <source> <dest>
//
// Supported formats: JPG, JPEG, PNG.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

// log is the process-wide logger. Level is adjusted from flags in main.
var log = logrus.New()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("photo-archiver", flag.ContinueOnError)
	dryRun := flags.BoolP("dry-run", "n", false, "Preview placements without touching any file")
	yes := flags.BoolP("yes", "y", false, "Skip the confirmation prompt")
	manifest := flags.BoolP("manifest", "m", false, "Record placed files in <dest>/manifest.csv")
	cleanup := flags.Bool("cleanup", false, "Remove source directories left empty after organizing")
	verbose := flags.BoolP("verbose", "v", false, "Per-file debug logging instead of a progress bar")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Photo Archiver - organize images by capture date\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  photo-archiver [flags] <source> <dest>\n\nFlags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if flags.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "error: source and destination directories are required")
		flags.Usage()
		return 1
	}

	srcRoot, err := filepath.Abs(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot resolve source path: %v\n", err)
		return 1
	}
	destRoot, err := filepath.Abs(flags.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot resolve destination path: %v\n", err)
		return 1
	}

	info, err := os.Stat(srcRoot)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "error: invalid source directory: %s\n", srcRoot)
		return 1
	}

	fmt.Printf("Source:      %s\n", srcRoot)
	fmt.Printf("Destination: %s\n", destRoot)
	if *dryRun {
		fmt.Println("[dry run - no files will be touched]")
	} else if !*yes {
		if !confirmProceed(os.Stdin, os.Stdout) {
			fmt.Println("Operation canceled.")
			return 0
		}
	}

	sum, err := organizeTree(exifRawDate, srcRoot, destRoot, *dryRun, *verbose)
	if err != nil {
		log.Errorf("traversal aborted: %v", err)
		return 1
	}

	if !*dryRun {
		if *manifest && len(sum.Placed) > 0 {
			if err := updateManifest(destRoot, sum.Placed); err != nil {
				log.Errorf("manifest update failed: %v", err)
			}
		}
		if *cleanup {
			if n := cleanupEmptyDirs(srcRoot); n > 0 {
				log.Infof("removed %d empty source directories", n)
			}
		}
	}

	printSummary(os.Stdout, sum, *dryRun)
	return 0
}

// confirmProceed asks for interactive confirmation before any filesystem
// mutation. Only a case-insensitive "y" proceeds; anything else (including
// EOF) declines. Kept separate from the core logic so nothing below main
// touches the terminal.
func confirmProceed(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Proceed? (y/N): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

// printSummary writes the end-of-run totals.
func printSummary(w io.Writer, sum Summary, dryRun bool) {
	verb := "placed"
	if dryRun {
		verb = "would be placed"
	}
	fmt.Fprintf(w, "\n%s %d files %s\n", color.GreenString("✓"), len(sum.Placed), verb)
	if sum.Duplicates > 0 {
		fmt.Fprintf(w, "%s %d duplicates skipped\n", color.YellowString("-"), sum.Duplicates)
	}
	if sum.NoDate > 0 {
		fmt.Fprintf(w, "%s %d files without a capture date\n", color.YellowString("-"), sum.NoDate)
	}
	if sum.InvalidDate > 0 {
		fmt.Fprintf(w, "%s %d files with an unparsable capture date\n", color.YellowString("-"), sum.InvalidDate)
	}
	if sum.Failed > 0 {
		fmt.Fprintf(w, "%s %d files failed\n", color.RedString("✗"), sum.Failed)
	}
}
