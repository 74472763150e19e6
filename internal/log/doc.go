// Package log provides secure logging built on the standard slog package.
//
// The SecureHandler automatically masks sensitive values in log output,
// most importantly the HIBP API key, which would otherwise appear whenever
// request details are logged at debug level. Cookies, auth headers, and
// token-shaped values are masked as well, so verbose logs stay safe to
// attach to tickets and engagement notes.
package log
