// Package progress renders the live one-line status display shown while
// accounts are being checked against the breach API.
package progress
