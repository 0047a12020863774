package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/inikulin/dmn/internal/branding"
	"github.com/inikulin/dmn/internal/errors"
	"github.com/inikulin/dmn/internal/logging"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known keys.
const (
	KeyForce      = "force"
	KeyIgnoreFile = "ignore_file"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
	KeyNoColor    = "no_color"
)

// Keys lists every key accepted by Set, in display order.
var Keys = []string{KeyForce, KeyIgnoreFile, KeyLogLevel, KeyLogFormat, KeyNoColor}

// envFiles are loaded from the working directory; earlier files win since
// godotenv never overrides a variable that is already set.
var envFiles = []string{".env.local", ".env"}

// Settings is the resolved configuration.
type Settings struct {
	Force      bool   `mapstructure:"force"`
	IgnoreFile string `mapstructure:"ignore_file"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	NoColor    bool   `mapstructure:"no_color"`
}

// Dir returns the config directory: $DMN_HOME if set, otherwise ~/.dmn.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.dmn/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from the env files, the environment and the config
// file. file overrides the default location when non-empty. A missing config
// file is not an error; a malformed one is.
func Load(file string) error {
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.NewConfigError("env", "loading "+name, err)
		}
	}

	viper.SetDefault(KeyForce, false)
	viper.SetDefault(KeyIgnoreFile, branding.IgnoreFile())
	viper.SetDefault(KeyLogLevel, logging.DefaultConfig().Level)
	viper.SetDefault(KeyLogFormat, logging.DefaultConfig().Format)
	viper.SetDefault(KeyNoColor, false)

	if file == "" {
		file = FilePath()
	}
	viper.SetConfigFile(file)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.NewConfigError("file", "reading "+file, err)
	}
	return nil
}

// LoadSettings decodes the current Viper state into Settings.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, errors.NewConfigError("settings", "decoding", err)
	}
	if s.LogLevel != "" && !logging.ValidLevel(s.LogLevel) {
		return nil, errors.NewValidationError(KeyLogLevel, s.LogLevel, "unknown log level")
	}
	if err := validateIgnoreFile(s.IgnoreFile); err != nil {
		return nil, err
	}
	return &s, nil
}

// validateIgnoreFile accepts a bare file name only, so the ignore file
// always lands directly inside the project directory.
func validateIgnoreFile(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return errors.NewValidationError(KeyIgnoreFile, name, "must be a file name without directory components")
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return errors.NewValidationError("key", key, "unknown key; expected one of "+strings.Join(Keys, ", "))
	}
	switch key {
	case KeyLogLevel:
		if !logging.ValidLevel(value) {
			return errors.NewValidationError(key, value, "unknown log level")
		}
	case KeyIgnoreFile:
		if err := validateIgnoreFile(value); err != nil {
			return err
		}
	case KeyForce, KeyNoColor:
		if _, err := strconv.ParseBool(value); err != nil {
			return errors.NewValidationError(key, value, "expected true or false")
		}
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
