package config

import "errors"

// Configuration validation errors.
//
// Design decision: Package-level sentinel errors rather than fresh error
// values in Validate(), so callers and tests can use errors.Is() while the
// messages stay human-readable.
var (
	// ErrNoAPIKey is returned when no API key was supplied via flag,
	// config file, or environment.
	ErrNoAPIKey = errors.New("no API key: use --apikey, the config file, or the HIBP_API_KEY environment variable")

	// ErrNoInputFile is returned when no input file path was given.
	ErrNoInputFile = errors.New("no input file: use --infile to point at a text file containing email addresses")

	// ErrInvalidSleep is returned when the inter-request delay is negative.
	// Zero disables the delay, which risks rate limiting but is allowed.
	ErrInvalidSleep = errors.New("invalid sleep: must be non-negative")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidFailureThreshold is returned when the abort threshold is
	// not positive. A zero threshold would abort before the first request.
	ErrInvalidFailureThreshold = errors.New("invalid failure threshold: must be positive")

	// ErrConflictingReportFormats is returned when both --markdown and
	// --json are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --markdown and --json cannot be used together")
)
