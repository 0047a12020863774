// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary. The values feed the command names,
// the config directory, the environment prefix and the attribution header
// written into freshly generated ignore files.
package branding

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	GitHubRepo  string `yaml:"github_repo"`
	IgnoreFile  string `yaml:"ignore_file"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "dmn",
			DisplayName: "dmn",
			Description: "Keeps a package's .npmignore in line with its development-only files",
			HomeDir:     ".dmn",
			EnvPrefix:   "DMN",
			GoModule:    "github.com/inikulin/dmn",
			GitHubRepo:  "inikulin/dmn",
			IgnoreFile:  ".npmignore",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "dmn").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".dmn").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DMN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string (e.g., "inikulin/dmn").
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// RepoURL returns the public repository URL.
func RepoURL() string { return "https://github.com/" + GitHubRepo() }

// IgnoreFile returns the default ignore file name (e.g., ".npmignore").
func IgnoreFile() string { load(); return defaults.IgnoreFile }

// GeneratedHeader returns the attribution comment placed at the top of
// newly created ignore files:
//
//	# Generated by dmn (https://github.com/inikulin/dmn)
func GeneratedHeader() string {
	return fmt.Sprintf("# Generated by %s (%s)", CLIName(), RepoURL())
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "DMN_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
