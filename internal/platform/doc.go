// Package platform provides cross-platform filesystem operations on top of
// an afero.Fs: atomic file replacement, permission handling that is a no-op
// on Windows, the host's default line ending, and a probe that detects
// case-insensitive filesystems.
package platform
