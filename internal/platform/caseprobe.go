package platform

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"
)

// ToggleCase swaps the case of every letter in s (".npmignore" → ".NPMIGNORE").
func ToggleCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

// IsCaseInsensitive reports whether the filesystem holding path ignores
// case. It reads path under its case-toggled name: success means the
// filesystem folded the name. Any failure, including path not existing
// yet, is treated as a case-sensitive filesystem. A name without letters
// cannot be probed and is also reported as case-sensitive.
func IsCaseInsensitive(fsys afero.Fs, dir, name string) bool {
	alt := ToggleCase(name)
	if alt == name {
		return false
	}
	_, err := afero.ReadFile(fsys, filepath.Join(dir, alt))
	return err == nil
}
