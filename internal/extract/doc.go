// Package extract finds email addresses in arbitrary text.
//
// The extractor is deliberately forgiving about its input: it operates on a
// whole file read as one blob and pulls out anything shaped like an email
// address, so input files need no cleanup before use.
package extract
