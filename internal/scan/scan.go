// Package scan enumerates candidate files in an upstream directory. The
// first-level-only behavior is a contract of the merge pass, so it lives
// here as a named, tested function instead of an incidental loop.
package scan

import (
	"fmt"
	"os"
)

// Files returns the names of the entries directly inside dir, in sorted
// order. Subdirectories and everything below them are ignored.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
