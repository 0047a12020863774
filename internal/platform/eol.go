package platform

import "runtime"

// Line endings.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// DefaultEOL returns the host platform's line ending.
func DefaultEOL() string {
	if runtime.GOOS == "windows" {
		return CRLF
	}
	return LF
}
