package reconcile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dmnerrors "github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/ignorefile"
	"github.com/inikulin/dmn/internal/logging"
	"github.com/inikulin/dmn/internal/platform"
	"github.com/inikulin/dmn/internal/scanner"
)

const root = "/project"

var ignorePath = filepath.Join(root, ".npmignore")

func caseSensitive(afero.Fs, string, string) bool { return false }

// recorder is a Confirmer that counts calls and returns a fixed answer.
type recorder struct {
	answer   bool
	err      error
	calls    int
	messages []string
}

func (r *recorder) Confirm(_ context.Context, msg string) (bool, error) {
	r.calls++
	r.messages = append(r.messages, msg)
	return r.answer, r.err
}

func newProject(t *testing.T, dirs []string, ignore *string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(root, 0o755))
	for _, d := range dirs {
		require.NoError(t, fsys.MkdirAll(filepath.Join(root, d), 0o755))
	}
	if ignore != nil {
		require.NoError(t, afero.WriteFile(fsys, ignorePath, []byte(*ignore), 0o644))
	}
	return fsys
}

func newReconciler(t *testing.T, fsys afero.Fs, opts ...Option) *Reconciler {
	t.Helper()
	opts = append([]Option{WithScannerOptions(scanner.WithCaseProbe(caseSensitive))}, opts...)
	r, err := New(fsys, opts...)
	require.NoError(t, err)
	return r
}

func readIgnore(t *testing.T, fsys afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, ignorePath)
	require.NoError(t, err)
	return string(data)
}

func strp(s string) *string { return &s }

func TestGen_EmptyProject(t *testing.T) {
	fsys := newProject(t, nil, nil)
	r := newReconciler(t, fsys)

	res, err := r.Gen(context.Background(), root, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, "OK: saved", res.String())

	eol := platform.DefaultEOL()
	assert.Equal(t, header+eol+eol+".npmignore", readIgnore(t, fsys))
}

func TestGen_NewFileWithDevDirs(t *testing.T) {
	fsys := newProject(t, []string{"test", "coverage", "benchmark"}, nil)
	r := newReconciler(t, fsys)

	res, err := r.Gen(context.Background(), root, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, Saved, res)

	eol := platform.DefaultEOL()
	want := header + eol + eol + ".npmignore" + eol + "benchmark/" + eol + "coverage/" + eol + "test/"
	assert.Equal(t, want, readIgnore(t, fsys))

	mode := platform.FileMode(fsys, ignorePath)
	assert.Equal(t, platform.DefaultFileMode, mode)
}

func TestGen_AlreadyPerfect(t *testing.T) {
	src := ".npmignore\nbenchmark/\ncoverage/\ntest/\n"
	fsys := newProject(t, []string{"test", "coverage", "benchmark"}, strp(src))
	c := &recorder{answer: true}
	r := newReconciler(t, fsys, WithConfirmer(c))

	res, err := r.Gen(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Equal(t, "OK: already-perfect", res.String())
	assert.Equal(t, src, readIgnore(t, fsys))
	assert.Zero(t, c.calls)
}

func TestGen_AlreadyPerfectInAnyOrder(t *testing.T) {
	src := "# mine\r\ntest/\r\n.npmignore\r\ncoverage/"
	fsys := newProject(t, []string{"test", "coverage"}, strp(src))
	r := newReconciler(t, fsys)

	res, err := r.Gen(context.Background(), root, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, AlreadyPerfect, res)
	assert.Equal(t, src, readIgnore(t, fsys))
}

func TestGen_Declined(t *testing.T) {
	src := ".npmignore\nbenchmark/"
	fsys := newProject(t, []string{"test", "coverage", "benchmark"}, strp(src))
	c := &recorder{answer: false}
	r := newReconciler(t, fsys, WithConfirmer(c))

	res, err := r.Gen(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Equal(t, "OK: canceled", res.String())
	assert.Equal(t, src, readIgnore(t, fsys))
	assert.Equal(t, 1, c.calls)
}

func TestGen_Confirmed(t *testing.T) {
	src := ".npmignore\nbenchmark/"
	fsys := newProject(t, []string{"test", "coverage", "benchmark"}, strp(src))
	c := &recorder{answer: true}
	r := newReconciler(t, fsys, WithConfirmer(c))

	res, err := r.Gen(context.Background(), root, Options{})
	require.NoError(t, err)
	assert.Equal(t, "OK: saved", res.String())
	assert.Equal(t, ".npmignore\nbenchmark/\n\ncoverage/\ntest/", readIgnore(t, fsys))

	require.Equal(t, 1, c.calls)
	assert.Equal(t, "Add 2 entries to .npmignore in /project?\n  coverage/\n  test/", c.messages[0])
}

func TestGen_ForceSkipsConfirmer(t *testing.T) {
	fsys := newProject(t, []string{"test"}, strp("node_modules/\n"))
	c := &recorder{answer: false}
	r := newReconciler(t, fsys, WithConfirmer(c))

	res, err := r.Gen(context.Background(), root, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, Saved, res)
	assert.Zero(t, c.calls)
	assert.Equal(t, "node_modules/\n\n.npmignore\ntest/\n", readIgnore(t, fsys))
}

func TestGen_PreservesModeAndCRLF(t *testing.T) {
	fsys := newProject(t, []string{"coverage"}, nil)
	require.NoError(t, afero.WriteFile(fsys, ignorePath, []byte("a\r\nb\r\n"), 0o600))
	r := newReconciler(t, fsys)

	_, err := r.Gen(context.Background(), root, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\n\r\n.npmignore\r\ncoverage/\r\n", readIgnore(t, fsys))

	info, err := fsys.Stat(ignorePath)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())
}

func TestGen_Idempotent(t *testing.T) {
	fsys := newProject(t, []string{"test", "benchmarks"}, strp("dist/\n"))
	r := newReconciler(t, fsys)
	ctx := context.Background()

	res, err := r.Gen(ctx, root, Options{Force: true})
	require.NoError(t, err)
	require.Equal(t, Saved, res)
	first := readIgnore(t, fsys)

	res, err = r.Gen(ctx, root, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, AlreadyPerfect, res)
	assert.Equal(t, first, readIgnore(t, fsys))
}

func TestGen_ConfirmerError(t *testing.T) {
	fsys := newProject(t, nil, nil)
	boom := errors.New("stdin closed")
	r := newReconciler(t, fsys, WithConfirmer(&recorder{err: boom}))

	_, err := r.Gen(context.Background(), root, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	exists, err := afero.Exists(fsys, ignorePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGen_NoConfirmer(t *testing.T) {
	fsys := newProject(t, nil, nil)
	r := newReconciler(t, fsys)

	_, err := r.Gen(context.Background(), root, Options{})
	var cfgErr *dmnerrors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestGen_ReadOnlyFilesystem(t *testing.T) {
	base := newProject(t, []string{"test"}, nil)
	r := newReconciler(t, afero.NewReadOnlyFs(base))

	_, err := r.Gen(context.Background(), root, Options{Force: true})
	require.Error(t, err)
	assert.True(t, dmnerrors.IsAccessDenied(err), "got %v", err)
}

func TestGen_MissingDirectory(t *testing.T) {
	r := newReconciler(t, afero.NewMemMapFs())

	_, err := r.Gen(context.Background(), "/nope", Options{Force: true})
	require.Error(t, err)
	assert.True(t, dmnerrors.IsNotFound(err), "got %v", err)
}

func TestPlan_DirectoryIsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/project.json", []byte("{}"), 0o644))
	r := newReconciler(t, fsys)

	for i := 0; i < 20; i++ {
		_, err := r.Plan(context.Background(), "/project.json")
		require.Error(t, err)
		assert.True(t, dmnerrors.IsValidationError(err), "run %d: got %v", i, err)
	}
}

func TestGen_LogsSave(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	r := newReconciler(t, newProject(t, nil, nil))

	_, err := r.Gen(ctx, root, Options{Force: true})
	require.NoError(t, err)
	assert.True(t, tl.Contains("ignore file saved"))
	assert.True(t, tl.Contains("merged ignore file"))
}

func TestPlan_DoesNotWrite(t *testing.T) {
	fsys := newProject(t, []string{"coverage"}, nil)
	r := newReconciler(t, fsys)

	plan, err := r.Plan(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, plan.Changed())
	assert.Nil(t, plan.Existing)
	assert.Equal(t, []string{".npmignore", "coverage/"}, plan.Suggestions)
	assert.Equal(t, []string{".npmignore", "coverage/"}, plan.Added)
	assert.Equal(t, "Create .npmignore in /project with 2 entries?\n  .npmignore\n  coverage/", plan.Prompt())

	exists, err := afero.Exists(fsys, ignorePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPlan_PromptSingular(t *testing.T) {
	p := &Plan{Path: ignorePath, Existing: emptyDoc(), Added: []string{"test/"}}
	assert.Equal(t, "Add 1 entry to .npmignore in /project?\n  test/", p.Prompt())
}

func TestResultStrings(t *testing.T) {
	assert.Equal(t, "OK: already-perfect", AlreadyPerfect.String())
	assert.Equal(t, "OK: saved", Saved.String())
	assert.Equal(t, "OK: canceled", Canceled.String())
	assert.Equal(t, "unknown(0)", Result(0).Tag())
}

func TestConfirmFunc(t *testing.T) {
	var got string
	c := ConfirmFunc(func(_ context.Context, msg string) (bool, error) {
		got = msg
		return true, nil
	})
	ok, err := c.Confirm(context.Background(), "go?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "go?", got)
}

func emptyDoc() *ignorefile.Document { return ignorefile.New("") }
