package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pwnreport"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .pwnreport configuration file.
// Every field is optional; CLI flags always win over file values.
type File struct {
	// APIKey is the API credential. Keeping it in a 0600 config file
	// avoids exposing it in argv and shell history.
	APIKey string `yaml:"apikey,omitempty"`

	// Sleep is the delay between requests, in Go duration syntax
	// (e.g. "1.6s", "2s").
	Sleep time.Duration `yaml:"sleep,omitempty"`

	// UserAgent overrides the User-Agent header sent to the API.
	UserAgent string `yaml:"useragent,omitempty"`

	// OutFile overrides the default report output path.
	OutFile string `yaml:"outfile,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicitly requested.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. .pwnreport in the current directory
//  3. .pwnreport in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// APIKeyFromEnv returns the API key from the environment, loading a .env
// file from the working directory first if one exists.
//
// Design decision: .env loading is best effort. A missing or malformed
// .env simply means the plain environment is consulted, so the error from
// godotenv is deliberately ignored.
func APIKeyFromEnv() string {
	_ = godotenv.Load() //nolint:errcheck // Missing .env is the common case
	return os.Getenv(APIKeyEnv)
}

// Merge applies file values onto the config for every field the user did
// not set on the command line. The flagSet callback reports whether a flag
// was explicitly provided.
func (c *Config) Merge(cf *File, flagSet func(name string) bool) {
	if cf == nil {
		return
	}
	if c.APIKey == "" && cf.APIKey != "" {
		c.APIKey = cf.APIKey
	}
	if !flagSet("sleep") && cf.Sleep > 0 {
		c.Sleep = cf.Sleep
	}
	if cf.UserAgent != "" {
		c.UserAgent = cf.UserAgent
	}
	if !flagSet("outfile") && cf.OutFile != "" {
		c.OutFile = cf.OutFile
	}
}
