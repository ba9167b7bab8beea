package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/spectree/toolaudit/internal/config"
)

// Plan lists the files an audit reads. Entries are slash-separated paths
// relative to Root, sorted and unique.
type Plan struct {
	Root    string
	Sources []string
	Docs    []string
}

func Build(root string, cfg config.Config) (Plan, error) {
	fsys := os.DirFS(root)

	sources, err := resolve(root, fsys, cfg.Sources, cfg.Exclude)
	if err != nil {
		return Plan{}, err
	}
	docs, err := resolve(root, fsys, cfg.Docs, nil)
	if err != nil {
		return Plan{}, err
	}
	return Plan{Root: root, Sources: sources, Docs: docs}, nil
}

func resolve(root string, fsys fs.FS, patterns, excludes []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string

	for _, raw := range patterns {
		pattern := cleanPattern(raw)
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", raw, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			excluded, err := isExcluded(match, excludes)
			if err != nil {
				return nil, err
			}
			if excluded {
				continue
			}
			info, err := os.Stat(filepath.Join(root, filepath.FromSlash(match)))
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isExcluded(match string, excludes []string) (bool, error) {
	for _, raw := range excludes {
		ok, err := doublestar.Match(cleanPattern(raw), match)
		if err != nil {
			return false, fmt.Errorf("exclude glob %s: %w", raw, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// cleanPattern turns a user glob into an io/fs pattern: slash separated,
// relative, without a leading "./".
func cleanPattern(pattern string) string {
	pattern = path.Clean(filepath.ToSlash(strings.TrimSpace(pattern)))
	return strings.TrimPrefix(pattern, "/")
}
