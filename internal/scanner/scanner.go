package scanner

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/inikulin/dmn/internal/branding"
	"github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/logging"
	"github.com/inikulin/dmn/internal/platform"
	"github.com/inikulin/dmn/internal/targets"
)

// CaseProbe reports whether the filesystem holding dir ignores case. name
// is the ignore file's name, which the probe may read under another case.
type CaseProbe func(fsys afero.Fs, dir, name string) bool

// Scanner derives suggestions for a project directory.
type Scanner struct {
	fs         afero.Fs
	table      *targets.Table
	ignoreFile string
	probe      CaseProbe
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithTable replaces the embedded target table.
func WithTable(t *targets.Table) Option {
	return func(s *Scanner) { s.table = t }
}

// WithIgnoreFile sets the ignore file name emitted for the self target.
func WithIgnoreFile(name string) Option {
	return func(s *Scanner) {
		if name != "" {
			s.ignoreFile = name
		}
	}
}

// WithCaseProbe replaces the case-sensitivity probe.
func WithCaseProbe(p CaseProbe) Option {
	return func(s *Scanner) { s.probe = p }
}

// New creates a Scanner over fsys using the embedded target table unless
// WithTable is given.
func New(fsys afero.Fs, opts ...Option) (*Scanner, error) {
	s := &Scanner{
		fs:         fsys,
		ignoreFile: branding.IgnoreFile(),
		probe:      platform.IsCaseInsensitive,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.table == nil {
		table, err := targets.Default()
		if err != nil {
			return nil, err
		}
		s.table = table
	}
	return s, nil
}

// IgnoreFile returns the ignore file name the scanner emits for the self target.
func (s *Scanner) IgnoreFile() string { return s.ignoreFile }

// Result is the outcome of a scan.
type Result struct {
	// Suggestions are canonical ignore lines in table order.
	Suggestions []string

	// CaseInsensitive is the probe's verdict for the scanned directory.
	CaseInsensitive bool
}

// Scan lists root and returns the suggestions that apply to it. The
// listing and the case probe run concurrently and are joined before
// matching. A missing root is a NotFound error, an unreadable one
// AccessDenied.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)

	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, errors.FromFS("read", "directory", root, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("dir", root, "not a directory")
	}

	var (
		entries         []os.FileInfo
		caseInsensitive bool
	)
	p := pool.New().WithErrors().WithFirstError()
	p.Go(func() error {
		var err error
		entries, err = afero.ReadDir(s.fs, root)
		if err != nil {
			return errors.FromFS("read", "directory", root, err)
		}
		return nil
	})
	p.Go(func() error {
		caseInsensitive = s.probe(s.fs, root, s.ignoreFile)
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("dir", root).
		Int("entries", len(entries)).
		Bool("case_insensitive", caseInsensitive).
		Msg("listed project directory")

	idx := s.index(root, entries, caseInsensitive)
	suggestions := s.match(idx)

	log.Debug().Strs("suggestions", suggestions).Msg("derived suggestions")

	return &Result{
		Suggestions:     suggestions,
		CaseInsensitive: caseInsensitive,
	}, nil
}

// entryIndex answers existence questions about one directory listing.
type entryIndex struct {
	fold  bool
	dirs  map[string]bool
	files map[string]bool
	names []string // regular file names, listing order
}

func (s *Scanner) index(root string, entries []os.FileInfo, fold bool) *entryIndex {
	idx := &entryIndex{
		fold:  fold,
		dirs:  make(map[string]bool, len(entries)),
		files: make(map[string]bool, len(entries)),
	}

	for _, e := range entries {
		isDir := e.IsDir()
		if e.Mode()&os.ModeSymlink != 0 {
			if st, err := s.fs.Stat(filepath.Join(root, e.Name())); err == nil {
				isDir = st.IsDir()
			}
		}

		key := idx.key(e.Name())
		if isDir {
			idx.dirs[key] = true
			continue
		}
		idx.files[key] = true
		idx.names = append(idx.names, e.Name())
	}
	return idx
}

func (idx *entryIndex) key(name string) string {
	if idx.fold {
		return strings.ToLower(name)
	}
	return name
}

func (idx *entryIndex) hasDir(name string) bool  { return idx.dirs[idx.key(name)] }
func (idx *entryIndex) hasFile(name string) bool { return idx.files[idx.key(name)] }

func (idx *entryIndex) hasGlob(pattern string) bool {
	pattern = idx.key(pattern)
	for _, name := range idx.names {
		if ok, _ := path.Match(pattern, idx.key(name)); ok {
			return true
		}
	}
	return false
}

// match walks the table in order and collects the applicable lines.
func (s *Scanner) match(idx *entryIndex) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(line string) {
		if !seen[line] {
			seen[line] = true
			out = append(out, line)
		}
	}

	for _, t := range s.table.Targets {
		switch t.Kind {
		case targets.KindSelf:
			add(s.ignoreFile)
		case targets.KindDir:
			if idx.hasDir(t.Name()) {
				add(t.Pattern)
			}
		case targets.KindFile:
			if idx.hasFile(t.Name()) {
				add(t.Pattern)
			}
		case targets.KindGlob:
			if idx.hasGlob(t.Pattern) {
				add(t.Pattern)
			}
		}
	}
	return out
}
