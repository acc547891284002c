package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultExtension is the extension of Apple strings resource files.
const DefaultExtension = ".strings"

// Walker traverses directories and collects files with a given extension.
type Walker struct {
	ext string
}

// NewWalker creates a Walker matching ext exactly (".strings" when empty).
// A missing leading dot is added.
func NewWalker(ext string) *Walker {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Walker{ext: ext}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path string
	Ext  string
}

// Walk discovers all matching files under root, depth first, in the order the
// directory entries are returned by the file system. A root that does not
// exist or is not a directory yields no files.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		log.Warn().Str("root", root).Msg("Root is not a directory")
		return nil, nil
	}

	var entries []FileEntry
	if err := w.walkDir(root, &entries); err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Debug().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

// walkDir reads entries unsorted, unlike filepath.WalkDir.
func (w *Walker) walkDir(dir string, entries *[]FileEntry) error {
	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open directory: %w", err)
	}
	dirEntries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, de := range dirEntries {
		path := filepath.Join(dir, de.Name())

		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			// Follow links to directories like a plain stat would.
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}

		if isDir {
			if err := w.walkDir(path, entries); err != nil {
				return err
			}
			continue
		}

		if w.matches(de.Name()) {
			*entries = append(*entries, FileEntry{Path: path, Ext: w.ext})
		}
	}

	return nil
}

// matches reports whether name carries the walker's extension after a
// non-empty stem, so a dot-file named ".strings" does not match.
func (w *Walker) matches(name string) bool {
	return filepath.Ext(name) == w.ext && len(name) > len(w.ext)
}

// Ext returns the extension the walker matches.
func (w *Walker) Ext() string {
	return w.ext
}
