// Package main provides the entry point for the pwnreport CLI.
//
// pwnreport extracts email addresses from a text file, checks each one
// against the haveibeenpwned.com API, and writes a report of which
// accounts appear in which breaches.
//
// Usage:
//
//	pwnreport check -a <api-key> -f <file>
//
// See --help for all available options.
package main

// main is the entry point for pwnreport.
func main() {
	Execute()
}
