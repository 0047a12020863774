package reconcile

import (
	"github.com/inikulin/dmn/internal/ignorefile"
)

// Merger combines an existing ignore document with suggestions.
type Merger struct {
	// Header is the attribution comment for newly created files.
	Header string

	// EOL is the line ending for newly created files; empty means the
	// platform default.
	EOL string
}

// Merge returns the merged document and the suggestions it added, in
// suggestion order. existing is never modified.
//
// With no existing document the result is the header, a blank line and
// every suggestion. Otherwise every existing line stays in place and the
// suggestions it does not cover (see ignorefile.Key) are appended after
// a single blank separator line. The separator is skipped when the
// document is empty or already ends with a blank line.
func (m Merger) Merge(existing *ignorefile.Document, suggestions []string) (*ignorefile.Document, []string) {
	if existing == nil {
		doc := ignorefile.New(m.EOL)
		added := dedupe(suggestions, nil)
		if m.Header != "" {
			doc.Append(m.Header, "")
		}
		doc.Append(added...)
		return doc, added
	}

	merged := existing.Clone()
	missing := dedupe(suggestions, existing)
	if len(missing) == 0 {
		return merged, nil
	}

	if len(merged.Lines) > 0 && !merged.EndsWithBlank() {
		merged.Append("")
	}
	merged.Append(missing...)
	return merged, missing
}

// dedupe returns suggestions in order, skipping repeats and paths doc
// (which may be nil) already ignores or re-includes.
func dedupe(suggestions []string, doc *ignorefile.Document) []string {
	var out []string
	seen := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		key := ignorefile.Key(s)
		if seen[key] || (doc != nil && doc.Covers(s)) {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
