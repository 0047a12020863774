package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inikulin/dmn/internal/errors"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(testPath(name))
	require.NoError(t, err)
	return data
}

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{
		".editorconfig",
		".eslintrc",
		".gitattributes",
		".github/",
		".gitignore",
		".jshintrc",
		".npmignore",
		".travis.yml",
		"appveyor.yml",
		"benchmark/",
		"benchmarks/",
		"coverage/",
		"Gruntfile.*",
		"Gulpfile.*",
		"HISTORY",
		"History",
		"Makefile",
		"test/",
		"tests/",
	}, table.Patterns())
}

func TestDefault_KindsMatchPatterns(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	for _, target := range table.Targets {
		if target.Kind == KindDir {
			assert.Equal(t, target.Pattern, target.Name()+"/", target.Pattern)
		} else {
			assert.Equal(t, target.Pattern, target.Name(), target.Pattern)
		}
	}
}

func TestParse_Valid(t *testing.T) {
	table, err := Parse(readTestdata(t, "valid-minimal.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Version)
	require.Len(t, table.Targets, 3)
	assert.Equal(t, Target{Pattern: "spec/", Kind: KindDir, Category: "test"}, table.Targets[1])
	assert.Equal(t, "spec", table.Targets[1].Name())
}

func TestParse_SchemaViolations(t *testing.T) {
	files := []string{
		"invalid-kind.yaml",
		"invalid-dir-slash.yaml",
		"invalid-negation.yaml",
		"invalid-missing-category.yaml",
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			result, err := Validate(readTestdata(t, file))
			require.NoError(t, err)
			assert.False(t, result.Valid)
			assert.NotEmpty(t, result.Issues)

			_, err = Parse(readTestdata(t, file))
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestParse_SemanticChecks(t *testing.T) {
	tests := map[string]string{
		"duplicate": `version: 1
targets:
  - {pattern: .npmignore, kind: self, category: self}
  - {pattern: test/, kind: dir, category: test}
  - {pattern: test/, kind: dir, category: test}
`,
		"no self": `version: 1
targets:
  - {pattern: test/, kind: dir, category: test}
`,
		"two selves": `version: 1
targets:
  - {pattern: .npmignore, kind: self, category: self}
  - {pattern: .vscodeignore, kind: self, category: self}
`,
		"bad glob": `version: 1
targets:
  - {pattern: .npmignore, kind: self, category: self}
  - {pattern: "Gulpfile.[", kind: glob, category: build}
`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.True(t, errors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestValidate_InvalidYAML(t *testing.T) {
	_, err := Validate([]byte("targets: [unclosed"))
	assert.Error(t, err)
}
