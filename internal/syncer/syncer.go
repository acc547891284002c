package syncer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"strings-sync/internal/filewalker"
	"strings-sync/internal/parser"
	"strings-sync/internal/reconcile"
	"strings-sync/internal/textfile"
	"strings-sync/internal/textutil"

	"github.com/rs/zerolog"
)

// ErrOutOfSync is returned in check mode when at least one target would change.
var ErrOutOfSync = errors.New("files out of sync")

// maxKeyLen bounds the key length printed in log lines.
const maxKeyLen = 80

// Options controls a synchronization run.
type Options struct {
	// Ext is the extension of target files, ".strings" when empty.
	Ext string
	// DryRun reconciles and reports without writing.
	DryRun bool
	// Check is a dry run that fails with ErrOutOfSync when a target would change.
	Check bool
	// SkipOriginal leaves the original alone when it is found under the folder.
	SkipOriginal bool
}

// FileResult describes the outcome for a single target file.
type FileResult struct {
	Path    string
	Added   []string
	Dropped []string
	// Changed is true when the new content differs from the bytes on disk.
	Changed bool
}

// Summary aggregates a run over all target files.
type Summary struct {
	Files   []*FileResult
	Changed []string
	Added   int
}

func (s *Summary) add(fr *FileResult) {
	s.Files = append(s.Files, fr)
	s.Added += len(fr.Added)
	if fr.Changed {
		s.Changed = append(s.Changed, fr.Path)
	}
}

// Syncer brings target files in line with an original file.
type Syncer struct {
	walker *filewalker.Walker
	opts   Options
	log    zerolog.Logger
}

// New creates a Syncer.
func New(opts Options, logger zerolog.Logger) *Syncer {
	if opts.Check {
		opts.DryRun = true
	}
	return &Syncer{
		walker: filewalker.NewWalker(opts.Ext),
		opts:   opts,
		log:    logger,
	}
}

// Run synchronizes every target file found under dir against the original.
// Files are processed one at a time in traversal order; the first error stops
// the run and files already rewritten stay rewritten.
func (s *Syncer) Run(ctx context.Context, originalPath, dir string) (*Summary, error) {
	original, err := textfile.Read(originalPath)
	if err != nil {
		return nil, fmt.Errorf("read original: %w", err)
	}
	records := parser.Parse(original.Lines)

	s.log.Info().
		Str("original", originalPath).
		Int("keys", len(records)).
		Str("folder", dir).
		Msg("Scanning folder")

	entries, err := s.walker.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("find target files: %w", err)
	}

	summary := &Summary{}

	if len(entries) == 0 {
		s.log.Info().Str("folder", dir).Msgf("No %s files found", s.walker.Ext())
		return summary, nil
	}

	var originalInfo os.FileInfo
	if s.opts.SkipOriginal {
		if originalInfo, err = os.Stat(originalPath); err != nil {
			return nil, fmt.Errorf("stat original: %w", err)
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if originalInfo != nil && isSameFile(originalInfo, entry.Path) {
			s.log.Info().Str("file", entry.Path).Msg("Skipping original")
			continue
		}

		s.log.Info().Str("file", entry.Path).Msg("Syncing")

		fr, err := s.SyncFile(entry.Path, records)
		if err != nil {
			return summary, err
		}
		summary.add(fr)
	}

	if s.opts.Check && len(summary.Changed) > 0 {
		s.log.Warn().Strs("files", summary.Changed).Msg("Files out of sync")
		return summary, fmt.Errorf("%w: %d of %d", ErrOutOfSync, len(summary.Changed), len(summary.Files))
	}

	if s.opts.DryRun {
		s.log.Info().
			Int("files", len(summary.Files)).
			Int("changed", len(summary.Changed)).
			Int("added", summary.Added).
			Msg("Dry run complete, no files written")
		return summary, nil
	}

	s.log.Info().Msgf("All %s files synchronized successfully!", s.walker.Ext())
	return summary, nil
}

// SyncFile reconciles one target file against the original records and writes
// the result back in the target's own encoding.
func (s *Syncer) SyncFile(path string, original []parser.Record) (*FileResult, error) {
	target, err := textfile.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}

	res := reconcile.Reconcile(original, target.Lines)

	for _, key := range res.Added {
		s.log.Info().Str("key", textutil.Truncate(key, maxKeyLen)).Msg("Adding missing key")
	}
	for _, key := range res.Dropped {
		s.log.Debug().Str("key", textutil.Truncate(key, maxKeyLen)).Msg("Dropping stale key")
	}

	data, err := textfile.Marshal(res.Lines, target.Encoding)
	if err != nil {
		return nil, fmt.Errorf("encode target %s: %w", path, err)
	}

	fr := &FileResult{
		Path:    path,
		Added:   res.Added,
		Dropped: res.Dropped,
		Changed: !bytes.Equal(data, target.Raw),
	}

	if s.opts.DryRun {
		if fr.Changed {
			s.log.Info().Str("file", path).Msg("Would update")
		}
		return fr, nil
	}

	if err := textfile.Write(path, data); err != nil {
		return nil, fmt.Errorf("write target %s: %w", path, err)
	}
	return fr, nil
}

func isSameFile(original os.FileInfo, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(original, info)
}
