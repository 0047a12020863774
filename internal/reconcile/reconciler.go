package reconcile

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/inikulin/dmn/internal/branding"
	"github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/ignorefile"
	"github.com/inikulin/dmn/internal/logging"
	"github.com/inikulin/dmn/internal/platform"
	"github.com/inikulin/dmn/internal/scanner"
)

// Options control a single Gen call.
type Options struct {
	// Force applies changes without asking the Confirmer.
	Force bool
}

// Reconciler runs the scan, merge and apply pipeline against one filesystem.
type Reconciler struct {
	fs          afero.Fs
	scanner     *scanner.Scanner
	scannerOpts []scanner.Option
	merger      Merger
	confirmer   Confirmer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithConfirmer sets the collaborator asked before writing without Force.
func WithConfirmer(c Confirmer) Option {
	return func(r *Reconciler) { r.confirmer = c }
}

// WithMerger replaces the default merger (branding header, platform EOL).
func WithMerger(m Merger) Option {
	return func(r *Reconciler) { r.merger = m }
}

// WithScannerOptions passes options through to the scanner.
func WithScannerOptions(opts ...scanner.Option) Option {
	return func(r *Reconciler) { r.scannerOpts = append(r.scannerOpts, opts...) }
}

// New creates a Reconciler over fsys.
func New(fsys afero.Fs, opts ...Option) (*Reconciler, error) {
	r := &Reconciler{
		fs:     fsys,
		merger: Merger{Header: branding.GeneratedHeader()},
	}
	for _, opt := range opts {
		opt(r)
	}

	s, err := scanner.New(fsys, r.scannerOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating scanner: %w", err)
	}
	r.scanner = s
	return r, nil
}

// Plan is the scanned and merged state of one project, before any write.
type Plan struct {
	// Path is the ignore file's location.
	Path string

	// Existing is the document on disk, nil if the file does not exist.
	Existing *ignorefile.Document

	// Merged is the document that would be written.
	Merged *ignorefile.Document

	// Added lists the suggestions Merged has beyond Existing, in order.
	Added []string

	// Suggestions is the full scanner output.
	Suggestions []string
}

// Changed reports whether applying the plan would write the file. A
// missing file always counts as a change.
func (p *Plan) Changed() bool {
	return p.Existing == nil || !p.Existing.Equal(p.Merged)
}

// Prompt describes the pending change for a confirmation question.
func (p *Plan) Prompt() string {
	var b strings.Builder
	name := filepath.Base(p.Path)
	dir := filepath.Dir(p.Path)
	if p.Existing == nil {
		fmt.Fprintf(&b, "Create %s in %s with %s?", name, dir, entries(len(p.Added)))
	} else {
		fmt.Fprintf(&b, "Add %s to %s in %s?", entries(len(p.Added)), name, dir)
	}
	for _, line := range p.Added {
		b.WriteString("\n  ")
		b.WriteString(line)
	}
	return b.String()
}

func entries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

// Plan scans dir and merges the suggestions into its ignore file without
// writing anything. dir is checked first; scanning and loading the
// existing file then run concurrently and the first error from either is
// returned as is.
func (r *Reconciler) Plan(ctx context.Context, dir string) (*Plan, error) {
	log := logging.FromContext(ctx)
	path := filepath.Join(dir, r.scanner.IgnoreFile())

	info, err := r.fs.Stat(dir)
	if err != nil {
		return nil, errors.FromFS("read", "directory", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("dir", dir, "not a directory")
	}

	var (
		scanned  *scanner.Result
		existing *ignorefile.Document
	)
	p := pool.New().WithErrors().WithFirstError()
	p.Go(func() error {
		var err error
		scanned, err = r.scanner.Scan(ctx, dir)
		return err
	})
	p.Go(func() error {
		var err error
		existing, err = ignorefile.Load(r.fs, path)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	merged, added := r.merger.Merge(existing, scanned.Suggestions)
	plan := &Plan{
		Path:        path,
		Existing:    existing,
		Merged:      merged,
		Added:       added,
		Suggestions: scanned.Suggestions,
	}

	log.Debug().
		Str("path", path).
		Bool("exists", existing != nil).
		Strs("added", added).
		Bool("changed", plan.Changed()).
		Msg("merged ignore file")

	return plan, nil
}

// Gen reconciles the ignore file in dir. It reports AlreadyPerfect without
// writing when nothing changes. Otherwise it writes and reports Saved if
// opts.Force is set or the Confirmer approves, and reports Canceled
// without writing if the Confirmer declines.
func (r *Reconciler) Gen(ctx context.Context, dir string, opts Options) (Result, error) {
	log := logging.FromContext(ctx)

	plan, err := r.Plan(ctx, dir)
	if err != nil {
		return 0, err
	}

	if !plan.Changed() {
		log.Debug().Str("path", plan.Path).Msg("ignore file already perfect")
		return AlreadyPerfect, nil
	}

	if !opts.Force {
		if r.confirmer == nil {
			return 0, errors.NewConfigError("reconcile", "confirmation required but no confirmer configured", nil)
		}
		ok, err := r.confirmer.Confirm(ctx, plan.Prompt())
		if err != nil {
			return 0, fmt.Errorf("asking for confirmation: %w", err)
		}
		if !ok {
			log.Debug().Str("path", plan.Path).Msg("update declined")
			return Canceled, nil
		}
	}

	if err := r.write(plan); err != nil {
		return 0, err
	}
	log.Info().Str("path", plan.Path).Int("added", len(plan.Added)).Msg("ignore file saved")
	return Saved, nil
}

// write replaces the ignore file atomically, keeping its permissions.
func (r *Reconciler) write(plan *Plan) error {
	mode := platform.FileMode(r.fs, plan.Path)
	err := platform.WriteFileAtomic(r.fs, plan.Path, plan.Merged.Bytes(), mode)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return errors.NewAccessDeniedError("write", plan.Path, err)
	default:
		return errors.NewWriteError(plan.Path, err)
	}
}
