package ignorefile

import (
	"bytes"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/platform"
)

// Document is an ignore file held in memory. Lines never contain the
// line ending. Identity of a line is its exact content.
type Document struct {
	Lines []string

	// EOL is the line separator used when serializing ("\n" or "\r\n").
	EOL string

	// TrailingEOL records whether the source ended with a line ending.
	TrailingEOL bool

	// breaks holds the separator that followed each parsed line, so files
	// with mixed line endings serialize back unchanged. Lines past its end
	// use EOL.
	breaks []string
}

// New returns an empty document using eol, or the platform default if eol
// is empty.
func New(eol string) *Document {
	if eol == "" {
		eol = platform.DefaultEOL()
	}
	return &Document{EOL: eol}
}

// Parse splits data into lines. The first line break decides the line
// ending used for new lines; content without any line break gets the
// platform default. Each parsed line keeps its own break.
func Parse(data []byte) *Document {
	eol, _ := DetectEOL(data)
	doc := &Document{EOL: eol}

	text := string(data)
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			doc.Lines = append(doc.Lines, text)
			break
		}
		line, br := text[:i], platform.LF
		if strings.HasSuffix(line, "\r") {
			line, br = line[:i-1], platform.CRLF
		}
		doc.Lines = append(doc.Lines, line)
		doc.breaks = append(doc.breaks, br)
		text = text[i+1:]
		if text == "" {
			doc.TrailingEOL = true
		}
	}
	return doc
}

// DetectEOL returns the line ending of the first line break in data and
// whether one was found at all.
func DetectEOL(data []byte) (string, bool) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return platform.DefaultEOL(), false
	}
	if i > 0 && data[i-1] == '\r' {
		return platform.CRLF, true
	}
	return platform.LF, true
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for i, line := range d.Lines {
		b.WriteString(line)
		if i < len(d.Lines)-1 || d.TrailingEOL {
			b.WriteString(d.lineBreak(i))
		}
	}
	return []byte(b.String())
}

func (d *Document) lineBreak(i int) string {
	if i < len(d.breaks) {
		return d.breaks[i]
	}
	return d.EOL
}

// String returns the serialized document.
func (d *Document) String() string { return string(d.Bytes()) }

// Contains reports whether line appears verbatim anywhere in the document.
func (d *Document) Contains(line string) bool {
	for _, l := range d.Lines {
		if l == line {
			return true
		}
	}
	return false
}

// Key reduces a line to the path it names for coverage checks: one
// leading "!" and one trailing "/" are dropped. "test", "test/" and
// "!test/" share the key "test".
func Key(line string) string {
	line = strings.TrimSuffix(line, "\r")
	line = strings.TrimPrefix(line, "!")
	return strings.TrimSuffix(line, "/")
}

// Covers reports whether some line names the same path as entry, either
// ignoring it or explicitly re-including it.
func (d *Document) Covers(entry string) bool {
	key := Key(entry)
	for _, l := range d.Lines {
		if Key(l) == key {
			return true
		}
	}
	return false
}

// EndsWithBlank reports whether the last line is empty.
func (d *Document) EndsWithBlank() bool {
	return len(d.Lines) > 0 && d.Lines[len(d.Lines)-1] == ""
}

// Append adds lines to the end of the document.
func (d *Document) Append(lines ...string) {
	d.Lines = append(d.Lines, lines...)
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := *d
	c.Lines = append([]string(nil), d.Lines...)
	c.breaks = append([]string(nil), d.breaks...)
	return &c
}

// Equal reports whether both documents serialize to the same bytes.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return bytes.Equal(d.Bytes(), other.Bytes())
}

// Load reads and parses the ignore file at path. A missing file yields
// (nil, nil); other failures are classified by errors.FromFS.
func Load(fsys afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.FromFS("read", "file", path, err)
	}
	return Parse(data), nil
}
