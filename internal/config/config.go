package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Wire-level constants (API URL, User-Agent, key header) match the values
// the breach API provider documents; the rest are conservative defaults
// chosen to stay clear of the provider's rate limiting.
const (
	// DefaultAPIURL is the haveibeenpwned v3 breached-account endpoint.
	// The address is appended as a path segment per request.
	DefaultAPIURL = "https://haveibeenpwned.com/api/v3/breachedaccount"

	// DefaultUserAgent identifies this client to the API.
	// The API rejects requests without a User-Agent, and bans may happen
	// at the User-Agent level, so this is kept distinctive and stable.
	DefaultUserAgent = "pwned_reportv1"

	// APIKeyHeader is the provider-specific header carrying the credential.
	APIKeyHeader = "hibp-api-key"

	// APIKeyEnv is the environment variable consulted for the API key when
	// no --apikey flag is given. A .env file in the working directory is
	// also honored.
	APIKeyEnv = "HIBP_API_KEY"

	// DefaultSleep is the delay between consecutive API requests.
	// 1.6 seconds sits just above the provider's documented rate limit
	// for the cheapest subscription tier.
	DefaultSleep = 1600 * time.Millisecond

	// DefaultTimeout bounds each API request. The provider answers
	// truncated queries quickly; anything near this limit indicates edge
	// throttling rather than a slow response.
	DefaultTimeout = 30 * time.Second

	// DefaultFailureThreshold is the number of unexpected HTTP statuses
	// tolerated before the run aborts. Three strikes distinguishes a blip
	// from active rate limiting without hammering a throttling server.
	DefaultFailureThreshold = 3

	// DefaultOutFile is the report path used when -o is not given.
	DefaultOutFile = "pwned.txt"

	// AppName is the application name used for XDG directory paths.
	AppName = "pwnreport"
)

// Config holds all options for a check run.
// It is populated from CLI flags, the optional .pwnreport file, and the
// environment, then passed explicitly to the pipeline.
//
// Design decision: Wire constants (API URL, User-Agent) live here as fields
// rather than as package globals read at call sites. That keeps the
// collector free of hidden state and lets tests point it at a mock server.
type Config struct {
	// APIKey is the credential sent in the provider's API-key header.
	APIKey string

	// InFile is the text file to extract email addresses from.
	InFile string

	// OutFile is the report output path. Overwritten if it exists.
	OutFile string

	// Sleep is the mandatory delay after every API request.
	Sleep time.Duration

	// Timeout bounds each individual API request.
	Timeout time.Duration

	// APIURL is the breached-account endpoint base URL.
	APIURL string

	// UserAgent is sent with every API request.
	UserAgent string

	// FailureThreshold aborts the run once this many unexpected HTTP
	// statuses have been observed.
	FailureThreshold int

	// Unique pre-deduplicates extracted addresses before collection,
	// preserving first-appearance order.
	Unique bool

	// MarkdownReport selects the Markdown report format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// JSONReport selects the JSON report format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// Verbose enables debug-level logging.
	Verbose bool

	// SaveToDB records the completed run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a Config with all defaults applied.
//
// Design decision: A constructor instead of zero values, because most
// defaults are non-zero and the constructor doubles as documentation of
// what they are.
func NewConfig() *Config {
	return &Config{
		OutFile:          DefaultOutFile,
		Sleep:            DefaultSleep,
		Timeout:          DefaultTimeout,
		APIURL:           DefaultAPIURL,
		UserAgent:        DefaultUserAgent,
		FailureThreshold: DefaultFailureThreshold,
		SaveToDB:         true,
		DBDir:            XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for pwnreport.
// On Linux: ~/.local/share/pwnreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pwnreport.
// On Linux: ~/.config/pwnreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that the configuration is usable.
// Called once after flag and file merging, before any work begins.
// Returns the first problem found; fixing one often clears the rest.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if c.InFile == "" {
		return ErrNoInputFile
	}
	if c.Sleep < 0 {
		return ErrInvalidSleep
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.FailureThreshold <= 0 {
		return ErrInvalidFailureThreshold
	}
	if c.MarkdownReport && c.JSONReport {
		return ErrConflictingReportFormats
	}
	return nil
}
