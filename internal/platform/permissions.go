package platform

import (
	"os"
	"runtime"

	"github.com/spf13/afero"
)

// DefaultFileMode is used for files that did not exist before a write.
const DefaultFileMode os.FileMode = 0o644

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(fsys afero.Fs, path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return fsys.Chmod(path, mode)
}

// FileMode returns the permission bits of an existing file, or
// DefaultFileMode if it cannot be stat'ed.
func FileMode(fsys afero.Fs, path string) os.FileMode {
	info, err := fsys.Stat(path)
	if err != nil {
		return DefaultFileMode
	}
	return info.Mode().Perm()
}
