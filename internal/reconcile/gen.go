package reconcile

import (
	"context"

	"github.com/spf13/afero"
)

// Gen reconciles the ignore file of dir on the OS filesystem and returns
// the status line ("OK: saved", "OK: already-perfect" or "OK: canceled").
// confirmer may be nil when opts.Force is set.
func Gen(ctx context.Context, dir string, opts Options, confirmer Confirmer) (string, error) {
	r, err := New(afero.NewOsFs(), WithConfirmer(confirmer))
	if err != nil {
		return "", err
	}
	res, err := r.Gen(ctx, dir, opts)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
