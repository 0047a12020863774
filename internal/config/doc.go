// Package config manages user-level settings stored at ~/.dmn/config.yaml.
// Values come from, in increasing priority, built-in defaults, the config
// file, DMN_* environment variables (including those loaded from .env and
// .env.local in the working directory) and command-line flags bound by the
// cli package.
package config
