// Package hibp talks to the haveibeenpwned v3 breached-account API.
//
// It contains the three network-adjacent pieces of the pipeline: the Client
// (one authenticated, cookie-preserving HTTP session per run), the
// Collector (the strictly sequential, rate-limit-respecting query loop),
// and the breach-name parser that turns raw truncated responses into the
// breach-indexed mapping the report is built from.
package hibp
