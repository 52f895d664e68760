// Package catalog extracts messages from sets of template files and merges
// them into one list of catalog entries.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/snapcore/go-xgettext-hbs/extract"
	"github.com/snapcore/go-xgettext-hbs/keywords"
	"github.com/snapcore/go-xgettext-hbs/po"
)

// Logger is the logger used by package catalog.
var Logger = zerolog.Nop()

// ResolutionError reports a pattern that could not be expanded to files.
type ResolutionError struct {
	Pattern string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %q: %v", e.Pattern, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Options configure how files are found and read.
type Options struct {
	// FS, when set, is searched instead of the operating system and Dir is
	// ignored. Patterns and paths are then slash separated and unrooted.
	FS fs.FS
	// Dir is the directory relative patterns and paths are resolved from.
	Dir string
	// Ignore drops resolved paths matching any of these patterns.
	Ignore []string
	// Keywords defaults to keywords.Default().
	Keywords *keywords.Spec
	// Jobs bounds concurrent file reads, defaulting to the CPU count.
	Jobs int
	// KeyByContext merges entries by msgid and context instead of msgid
	// alone.
	KeyByContext bool
	// CommentTags select the template comments kept for translators; see
	// extract.Walk.
	CommentTags []string
}

// Callback receives either the error that stopped a run or its entries.
type Callback func(err error, entries []po.Entry)

// Extract resolves pattern, extracts every matching file and passes the
// merged entries, or the first error, to done.
func Extract(pattern string, opts Options, done Callback) {
	entries, err := Collect(pattern, opts)
	if err != nil {
		done(err, nil)
		return
	}
	done(nil, entries)
}

// Collect is Extract returning its result.
func Collect(pattern string, opts Options) ([]po.Entry, error) {
	files, err := Resolve(pattern, opts)
	if err != nil {
		return nil, err
	}
	return Files(files, opts)
}

// Resolve expands a glob pattern, supporting "**", to sorted file paths.
func Resolve(pattern string, opts Options) ([]string, error) {
	for _, ignore := range opts.Ignore {
		if !doublestar.ValidatePattern(ignore) {
			return nil, &ResolutionError{Pattern: ignore, Err: doublestar.ErrBadPattern}
		}
	}

	fsys, base, pat := opts.FS, "", strings.TrimPrefix(pattern, "./")
	if fsys == nil {
		base, pat = doublestar.SplitPattern(filepath.ToSlash(pattern))
		root := filepath.FromSlash(base)
		if !filepath.IsAbs(root) && opts.Dir != "" {
			root = filepath.Join(opts.Dir, root)
		}
		fsys = os.DirFS(root)
	}

	matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, &ResolutionError{Pattern: pattern, Err: err}
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if base != "" {
			m = path.Join(base, m)
		}
		if ignored(m, opts.Ignore) {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)

	Logger.Debug().
		Str("pattern", pattern).
		Int("files", len(files)).
		Msg("Resolved template files")

	return files, nil
}

func ignored(file string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

func (opts *Options) readFile(name string) ([]byte, error) {
	if opts.FS != nil {
		return fs.ReadFile(opts.FS, name)
	}
	if opts.Dir == "" || filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	return os.ReadFile(filepath.Join(opts.Dir, name))
}

// Files extracts the given files concurrently and merges their entries in
// the order the files are listed. Each path is used as-is in references.
func Files(files []string, opts Options) ([]po.Entry, error) {
	spec := keywords.Default()
	if opts.Keywords != nil {
		spec = *opts.Keywords
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([][]po.Entry, len(files))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			data, err := opts.readFile(file)
			if err != nil {
				return fmt.Errorf("cannot read template: %w", err)
			}
			entries, err := extract.Source(string(data), file, spec, opts.CommentTags...)
			if err != nil {
				return err
			}

			Logger.Debug().
				Str("file", file).
				Int("messages", len(entries)).
				Msg("Extracted messages")

			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(files, results, opts.KeyByContext)
}
