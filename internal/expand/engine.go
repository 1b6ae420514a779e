package expand

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

// DefaultSuffix marks template files.
const DefaultSuffix = ".uncol"

var log = commonlog.GetLogger("unipalette.expand")

// Engine finds template files and writes their expanded output next to
// them, with the suffix removed from the file name.
type Engine struct {
	Suffix  string   // template file suffix, DefaultSuffix if empty
	Workers int      // concurrent files, runtime.NumCPU() if < 1
	Exclude []string // directory names skipped while walking
}

// Report summarizes a Run.
type Report struct {
	Files         []string // outputs written
	Substitutions int
	Diagnostics   []Diagnostic
	Errors        []FileError
}

// FileError is a template that could not be read or written.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

func (e *Engine) suffix() string {
	if e.Suffix == "" {
		return DefaultSuffix
	}
	return e.Suffix
}

func (e *Engine) workers() int {
	if e.Workers < 1 {
		return runtime.NumCPU()
	}
	return e.Workers
}

// Run expands root, which is either a template file or a directory searched
// recursively for templates. A failing file is recorded in the report and
// does not stop the others. The returned error is set only when root cannot
// be searched or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, p *palette.Palette, root string) (*Report, error) {
	files, err := e.Find(root)
	if err != nil {
		return nil, err
	}
	log.Infof("expanding %d template(s) under %s", len(files), root)

	var (
		mu     sync.Mutex
		report = &Report{}
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, subs, diags, err := e.processFile(p, path)

			mu.Lock()
			defer mu.Unlock()
			report.Substitutions += subs
			report.Diagnostics = append(report.Diagnostics, diags...)
			if err != nil {
				log.Errorf("%s: %v", path, err)
				report.Errors = append(report.Errors, FileError{Path: path, Err: err})
				return nil
			}
			report.Files = append(report.Files, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	slices.Sort(report.Files)
	slices.SortFunc(report.Diagnostics, func(a, b Diagnostic) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return a.Line - b.Line
	})
	slices.SortFunc(report.Errors, func(a, b FileError) int {
		return strings.Compare(a.Path, b.Path)
	})
	return report, nil
}

// Find lists the template files under root in lexical order.
func (e *Engine) Find(root string) ([]string, error) {
	suffix := e.suffix()
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("finding templates: %w", err)
	}
	if !info.IsDir() {
		if !isTemplate(root, suffix) {
			return nil, fmt.Errorf("%s is not a %s template", root, suffix)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(e.Exclude, d.Name()) {
				log.Debugf("skipping %s", path)
				return filepath.SkipDir
			}
			return nil
		}
		if isTemplate(path, suffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding templates: %w", err)
	}
	return files, nil
}

// isTemplate reports whether path ends in suffix and has a name left once
// the suffix is removed.
func isTemplate(path, suffix string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, suffix) && len(base) > len(suffix)
}

// OutputPath returns where the expansion of a template is written.
func OutputPath(path, suffix string) string {
	return strings.TrimSuffix(path, suffix)
}

func (e *Engine) processFile(p *palette.Palette, path string) (string, int, []Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", 0, nil, fmt.Errorf("reading template: %w", err)
	}

	expanded, subs, diags := Substitute(p, path, string(src))
	for _, d := range diags {
		log.Warningf("%s", d)
	}

	out := OutputPath(path, e.suffix())
	if err := os.WriteFile(out, []byte(expanded), 0o644); err != nil {
		return "", subs, diags, fmt.Errorf("writing output: %w", err)
	}
	log.Debugf("wrote %s (%d tag(s))", out, subs)
	return out, subs, diags, nil
}
