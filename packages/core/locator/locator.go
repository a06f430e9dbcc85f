// Package locator finds request definition files on disk, by exact path or
// by fuzzy search under a root directory.
package locator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kuiper-sh/kuiper/packages/core/request"
)

// Locator resolves request names to definition files under a root
// directory.
type Locator struct {
	root string
}

func New(root string) *Locator {
	return &Locator{root: root}
}

// LocateExact resolves path to an existing definition file and returns its
// absolute form. Relative paths are resolved against the locator root. A
// missing target maps to request.ErrNotFound so callers can fall back to
// Search.
func (l *Locator) LocateExact(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, request.ErrNotFound)
		}
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", path, request.ErrNotFound)
	}
	return abs, nil
}

// Search walks every directory under the root breadth-first and collects
// each definition file whose full path contains term as a case-sensitive
// substring. Sibling visit order is unspecified. Zero matches yield an
// empty result, not an error; filesystem failures during the walk always
// propagate.
func (l *Locator) Search(term string) ([]string, error) {
	var matches []string
	queue := []string{l.root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				queue = append(queue, path)
				continue
			}
			if filepath.Ext(path) == request.Ext && strings.Contains(path, term) {
				matches = append(matches, path)
			}
		}
	}
	return matches, nil
}
