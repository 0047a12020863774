package targets

import (
	_ "embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/inikulin/dmn/internal/errors"
)

//go:embed targets.yaml
var defaultTable []byte

// Kind says how a target is matched against directory entries.
type Kind string

const (
	KindSelf Kind = "self"
	KindFile Kind = "file"
	KindDir  Kind = "dir"
	KindGlob Kind = "glob"
)

// Target is one row of the canonical table.
type Target struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Kind     Kind   `yaml:"kind" json:"kind"`
	Category string `yaml:"category" json:"category"`
}

// Name returns the directory entry name the target looks for: the pattern
// without its trailing slash.
func (t Target) Name() string {
	return strings.TrimSuffix(t.Pattern, "/")
}

// Table is the ordered list of targets.
type Table struct {
	Version int      `yaml:"version"`
	Targets []Target `yaml:"targets"`
}

var (
	defaultOnce sync.Once
	defaultTbl  *Table
	defaultErr  error
)

// Default returns the embedded table. It is parsed and validated once.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTbl, defaultErr = Parse(defaultTable)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("embedded target table: %w", defaultErr)
		}
	})
	return defaultTbl, defaultErr
}

// Parse validates data against the schema and decodes it. Beyond the
// schema, patterns must be unique, exactly one target must be of kind
// self, and glob patterns must be well-formed.
func Parse(data []byte) (*Table, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, errors.NewValidationError("", nil, strings.Join(msgs, "; "))
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing target table: %w", err)
	}

	if err := table.check(); err != nil {
		return nil, err
	}
	return &table, nil
}

func (t *Table) check() error {
	seen := make(map[string]bool, len(t.Targets))
	selves := 0
	for i, target := range t.Targets {
		field := fmt.Sprintf("targets[%d].pattern", i)
		if seen[target.Pattern] {
			return errors.NewValidationError(field, target.Pattern, "duplicate pattern")
		}
		seen[target.Pattern] = true

		switch target.Kind {
		case KindSelf:
			selves++
		case KindGlob:
			if _, err := path.Match(target.Pattern, ""); err != nil {
				return errors.NewValidationError(field, target.Pattern, "malformed glob")
			}
		}
	}
	if selves != 1 {
		return errors.NewValidationError("targets", selves, "exactly one target must be of kind self")
	}
	return nil
}

// Patterns returns every pattern in table order.
func (t *Table) Patterns() []string {
	out := make([]string, len(t.Targets))
	for i, target := range t.Targets {
		out[i] = target.Pattern
	}
	return out
}
