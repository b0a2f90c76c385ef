package main

import (
	"fmt"
	"io"
	"os"

	"github.com/djherbis/times"
)

// =============================================================================
// File Operations
// =============================================================================

// copyFile copies src to dst, preserving mode bits and the source's access
// and modification timestamps. The placement engine adjusts the source's
// timestamps before calling this, so the copy inherits the adjusted values.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	ts, err := times.Stat(src)
	if err != nil {
		return fmt.Errorf("read timestamps of %s: %w", src, err)
	}
	if err := os.Chtimes(dst, ts.AccessTime(), ts.ModTime()); err != nil {
		return fmt.Errorf("set timestamps of %s: %w", dst, err)
	}

	return nil
}
