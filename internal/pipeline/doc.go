// Package pipeline runs the four stages of a check: extract emails from
// the input file, collect raw breach data from the API, re-index it by
// breach name, and write the report.
//
// The stages share a single CheckReport and run strictly one after
// another; each consumes the previous stage's complete output. There is no
// streaming between stages and no recovery: any stage error ends the run.
package pipeline
